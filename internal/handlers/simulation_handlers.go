package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Werneck0live/simulador-trabalhista/internal/labor"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
	"github.com/Werneck0live/simulador-trabalhista/internal/utils"
)

type Simulator interface {
	SimulateVacation(ctx context.Context, cnpj, identifier string, days int, sell *bool) (labor.VacationSimulation, error)
	SimulateTermination(ctx context.Context, cnpj, identifier string, terminationDate time.Time, terminationType string) (labor.TerminationResult, error)
	FindDocument(ctx context.Context, cnpj, docType, month string) (models.Document, error)
}

type Catalog interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	ListEmployees(ctx context.Context, accountID, companyID string) ([]models.EmployeeSummary, error)
}

type SimulationHandler struct {
	Sim     Simulator
	Catalog Catalog
	Timeout time.Duration // por requisição; a busca percorre várias páginas e contas
	Log     *slog.Logger
}

func NewSimulationHandler(sim Simulator, catalog Catalog, timeout time.Duration, log *slog.Logger) *SimulationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SimulationHandler{Sim: sim, Catalog: catalog, Timeout: timeout, Log: log.With("cmp", "handlers")}
}

func (h *SimulationHandler) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	if h.Timeout <= 0 {
		return context.WithTimeout(r.Context(), 30*time.Second)
	}
	return context.WithTimeout(r.Context(), h.Timeout)
}

func (h *SimulationHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.Log.Warn("request_failed", "path", r.URL.Path, "err", err)
	utils.WriteError(w, err)
}

func (h *SimulationHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SimulationHandler) Companies(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	list, err := h.Catalog.ListCompanies(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if list == nil {
		list = []models.Company{}
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *SimulationHandler) Employees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	companyID := strings.TrimSpace(q.Get("empresaId"))
	accountID := strings.TrimSpace(q.Get("conta"))
	if companyID == "" || accountID == "" {
		utils.BadRequest(w, "empresaId and conta are required")
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	roster, err := h.Catalog.ListEmployees(ctx, accountID, companyID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if roster == nil {
		roster = []models.EmployeeSummary{}
	}
	utils.WriteJSON(w, http.StatusOK, roster)
}

func (h *SimulationHandler) Vacation(w http.ResponseWriter, r *http.Request) {
	var dto VacationRequestDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, formatDecodeError(err))
		return
	}
	if err := validateDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	sim, err := h.Sim.SimulateVacation(ctx, dto.CNPJ, dto.NomeFuncionario, dto.DiasFerias, dto.VenderDias)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if sim.Both() {
		utils.WriteJSON(w, http.StatusOK, VacationChoicesDTO{
			SemVender: toVacationDTO(*sim.WithoutSale),
			Vendendo:  toVacationDTO(*sim.WithSale),
		})
		return
	}
	utils.WriteJSON(w, http.StatusOK, toVacationDTO(*sim.Result))
}

func (h *SimulationHandler) Termination(w http.ResponseWriter, r *http.Request) {
	var dto TerminationRequestDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, formatDecodeError(err))
		return
	}
	if err := validateDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	date, err := time.Parse(time.DateOnly, dto.DataDemissao)
	if err != nil {
		utils.BadRequest(w, "dataDemissao must be a date in the format 2006-01-02")
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	res, err := h.Sim.SimulateTermination(ctx, dto.CNPJ, dto.NomeOuCPF, date, dto.TipoRescisao)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toTerminationDTO(res))
}

func (h *SimulationHandler) Document(w http.ResponseWriter, r *http.Request) {
	var dto DocumentSearchDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, formatDecodeError(err))
		return
	}
	if err := validateDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	doc, err := h.Sim.FindDocument(ctx, dto.CNPJ, dto.Tipo, dto.Mes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, doc)
}
