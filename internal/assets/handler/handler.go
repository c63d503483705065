package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"govassets/internal/assets/models"
	id "govassets/pkg/domain"
	dErrors "govassets/pkg/domain-errors"
	"govassets/pkg/platform/httputil"
	"govassets/pkg/platform/middleware/admin"
	"govassets/pkg/platform/middleware/request"
)

// Service defines the asset operations exposed over HTTP.
type Service interface {
	LoadRealm(ctx context.Context, realm id.PublicKey) (*models.State, error)
	State(ctx context.Context, realm id.PublicKey) (*models.State, error)
	RefetchGovernanceAccounts(ctx context.Context, realm, governance id.PublicKey) (*models.State, error)
}

// Handler serves realm asset snapshots.
type Handler struct {
	assets     Service
	adminToken string
	logger     *slog.Logger
}

// New creates an assets Handler. Loads and refetches require adminToken and
// are refused while it is empty.
func New(assets Service, adminToken string, logger *slog.Logger) *Handler {
	return &Handler{assets: assets, adminToken: adminToken, logger: logger}
}

// Register registers the asset routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	guarded := r.With(admin.RequireAdminToken(h.adminToken, h.logger))
	guarded.Post("/realms/{realm}/load", h.handleLoadRealm)
	guarded.Post("/realms/{realm}/governances/{governance}/refetch", h.handleRefetch)
	r.Get("/realms/{realm}/assets", h.handleGetAssets)
}

// StateResponse is the wire form of a realm snapshot.
type StateResponse struct {
	Realm                 string                `json:"realm"`
	Name                  string                `json:"name"`
	Loading               bool                  `json:"loading"`
	UpdatedAt             time.Time             `json:"updated_at"`
	Governances           int                   `json:"governances"`
	AssetAccounts         []models.AssetAccount `json:"asset_accounts"`
	GovernedTokenAccounts []models.AssetAccount `json:"governed_token_accounts"`
}

func toResponse(state *models.State, filter models.AccountType) StateResponse {
	resp := StateResponse{
		Realm:                 state.Realm.Pubkey.String(),
		Name:                  state.Realm.Name,
		Loading:               state.Loading,
		UpdatedAt:             state.UpdatedAt,
		Governances:           len(state.Governances),
		AssetAccounts:         state.AssetAccounts,
		GovernedTokenAccounts: state.GovernedTokenAccounts,
	}
	if filter != "" {
		resp.AssetAccounts = models.OfType(state.AssetAccounts, filter)
		resp.GovernedTokenAccounts = models.OfType(state.GovernedTokenAccounts, filter)
	}
	if resp.AssetAccounts == nil {
		resp.AssetAccounts = []models.AssetAccount{}
	}
	if resp.GovernedTokenAccounts == nil {
		resp.GovernedTokenAccounts = []models.AssetAccount{}
	}
	return resp
}

func (h *Handler) handleLoadRealm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	realm, err := id.ParsePublicKey(chi.URLParam(r, "realm"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	state, err := h.assets.LoadRealm(ctx, realm)
	if err != nil {
		h.logError(ctx, "failed to load realm", requestID, realm, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(state, ""))
}

func (h *Handler) handleGetAssets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	realm, err := id.ParsePublicKey(chi.URLParam(r, "realm"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var filter models.AccountType
	if raw := r.URL.Query().Get("type"); raw != "" {
		if filter, err = models.ParseAccountType(raw); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	state, err := h.assets.State(ctx, realm)
	if err != nil {
		h.logError(ctx, "failed to read assets", requestID, realm, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(state, filter))
}

func (h *Handler) handleRefetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	realm, err := id.ParsePublicKey(chi.URLParam(r, "realm"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	governance, err := id.ParsePublicKey(chi.URLParam(r, "governance"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	state, err := h.assets.RefetchGovernanceAccounts(ctx, realm, governance)
	if err != nil {
		h.logError(ctx, "failed to refetch governance accounts", requestID, realm, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(state, ""))
}

// logError logs client errors at warn and everything else at error.
func (h *Handler) logError(ctx context.Context, msg, requestID string, realm id.PublicKey, err error) {
	if dErrors.HasCode(err, dErrors.CodeNotFound) || dErrors.HasCode(err, dErrors.CodeInvalidInput) {
		h.logger.WarnContext(ctx, msg, "request_id", requestID, "realm", realm.String(), "error", err.Error())
		return
	}
	h.logger.ErrorContext(ctx, msg, "request_id", requestID, "realm", realm.String(), "error", err.Error())
}
