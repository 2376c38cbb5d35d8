package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
)

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

/*
DecodeStrict decodifica JSON rejeitando chaves desconhecidas
e garantindo que exista exatamente UM objeto JSON.
*/
func DecodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected additional JSON content")
	}
	return nil
}

func BadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// WriteError answers with the status and message of a core error.
func WriteError(w http.ResponseWriter, err error) {
	body := map[string]string{"error": apperrors.Message(err)}
	if kind, ok := apperrors.KindOf(err); ok {
		body["code"] = string(kind)
	}
	WriteJSON(w, apperrors.HTTPStatus(err), body)
}
