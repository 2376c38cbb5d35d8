package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindUnknownAccount            Kind = "UNKNOWN_ACCOUNT"
	KindRemoteUnavailable         Kind = "REMOTE_UNAVAILABLE"
	KindCompanyNotFound           Kind = "COMPANY_NOT_FOUND"
	KindEmployeeNotFound          Kind = "EMPLOYEE_NOT_FOUND"
	KindEmployeeDetailUnavailable Kind = "EMPLOYEE_DETAIL_UNAVAILABLE"
	KindVacationNotYetEligible    Kind = "VACATION_NOT_YET_ELIGIBLE"
	KindInvalidVacationDays       Kind = "INVALID_VACATION_DAYS"
	KindInvalidTerminationDate    Kind = "INVALID_TERMINATION_DATE"
	KindInvalidTerminationType    Kind = "INVALID_TERMINATION_TYPE"
	KindDocumentNotFound          Kind = "DOCUMENT_NOT_FOUND"
)

// Step tells which lookup of the document flow came back empty.
type Step string

const (
	StepCompany   Step = "company"
	StepDocuments Step = "documents"
	StepMatch     Step = "match"
)

// Error is the structured failure returned by the core packages.
// Two errors are equal under errors.Is when their kinds match, so callers
// compare against the sentinels below.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "resolver.company"
	Msg  string // user-facing message
	Step Step   // only set for KindDocumentNotFound
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnknownAccount            = &Error{Kind: KindUnknownAccount, Msg: "unknown tenant account"}
	ErrRemoteUnavailable         = &Error{Kind: KindRemoteUnavailable, Msg: "remote source unavailable"}
	ErrCompanyNotFound           = &Error{Kind: KindCompanyNotFound, Msg: "company not found"}
	ErrEmployeeNotFound          = &Error{Kind: KindEmployeeNotFound, Msg: "employee not found"}
	ErrEmployeeDetailUnavailable = &Error{Kind: KindEmployeeDetailUnavailable, Msg: "employee detail unavailable"}
	ErrVacationNotYetEligible    = &Error{Kind: KindVacationNotYetEligible, Msg: "employee has less than one year of service"}
	ErrInvalidVacationDays       = &Error{Kind: KindInvalidVacationDays, Msg: "vacation days must be between 1 and 30"}
	ErrInvalidTerminationDate    = &Error{Kind: KindInvalidTerminationDate, Msg: "termination date is before admission"}
	ErrInvalidTerminationType    = &Error{Kind: KindInvalidTerminationType, Msg: "invalid termination type"}
	ErrDocumentNotFound          = &Error{Kind: KindDocumentNotFound, Msg: "document not found"}
)

// E builds an error of the given kind with the sentinel's message.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: messageFor(kind), Err: err}
}

// DocumentNotFound records which step of the document flow failed.
func DocumentNotFound(op string, step Step, err error) *Error {
	return &Error{Kind: KindDocumentNotFound, Op: op, Msg: ErrDocumentNotFound.Msg, Step: step, Err: err}
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// HTTPStatus maps an error to the status the HTTP layer should answer with.
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case KindInvalidVacationDays, KindInvalidTerminationDate, KindInvalidTerminationType:
		return http.StatusBadRequest
	case KindVacationNotYetEligible:
		return http.StatusUnprocessableEntity
	case KindCompanyNotFound, KindEmployeeNotFound, KindDocumentNotFound, KindUnknownAccount:
		return http.StatusNotFound
	case KindRemoteUnavailable, KindEmployeeDetailUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing text of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func messageFor(kind Kind) string {
	for _, s := range []*Error{
		ErrUnknownAccount, ErrRemoteUnavailable, ErrCompanyNotFound, ErrEmployeeNotFound,
		ErrEmployeeDetailUnavailable, ErrVacationNotYetEligible, ErrInvalidVacationDays,
		ErrInvalidTerminationDate, ErrInvalidTerminationType, ErrDocumentNotFound,
	} {
		if s.Kind == kind {
			return s.Msg
		}
	}
	return string(kind)
}
