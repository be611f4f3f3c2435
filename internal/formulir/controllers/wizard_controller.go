package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	common "github.com/gmit-kupang/sensus-jemaat/internal/common/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/members"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/services"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/submission"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/validation"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/wizard"
	"github.com/gmit-kupang/sensus-jemaat/ws"
)

const maxBody = 1 << 20

type WizardController struct {
	Sessions *services.SessionService
	Logger   *zap.Logger
	validate *validator.Validate
}

func NewWizardController(sessions *services.SessionService, logger *zap.Logger) *WizardController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardController{Sessions: sessions, Logger: logger, validate: validator.New()}
}

type createSessionRequest struct {
	DeviceID string `json:"deviceId" validate:"required,max=128"`
}

type sessionResponse struct {
	SessionID string          `json:"sessionId"`
	Restored  bool            `json:"restored"`
	State     wizard.Snapshot `json:"state"`
}

type confirmRequest struct {
	AddMore bool `json:"addMore"`
}

type assetRequest struct {
	Label    string        `json:"label" validate:"required"`
	Selected *bool         `json:"selected"`
	Quantity *models.Count `json:"quantity"`
}

type disabilityRequest struct {
	Category models.DisabilityCategory `json:"category"`
	Values   []string                  `json:"values"`
	Double   *bool                     `json:"double"`
}

type valueRequest struct {
	Value string `json:"value" validate:"required"`
}

// bind membaca body JSON lalu memvalidasi tag struct.
func (wc *WizardController) bind(c echo.Context, dst interface{}) error {
	if err := json.NewDecoder(io.LimitReader(c.Request().Body, maxBody)).Decode(dst); err != nil {
		return err
	}
	return wc.validate.Struct(dst)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, common.Response{Status: http.StatusBadRequest, Message: msg})
}

func (wc *WizardController) session(c echo.Context) (*services.Session, error) {
	sess, err := wc.Sessions.Get(c.Param("id"))
	if err != nil {
		return nil, c.JSON(http.StatusNotFound, common.Response{
			Status:  http.StatusNotFound,
			Message: err.Error(),
		})
	}
	return sess, nil
}

func memberIndex(c echo.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	return i, err == nil
}

// respond memetakan hasil operasi wizard ke envelope HTTP.
func (wc *WizardController) respond(c echo.Context, snap wizard.Snapshot, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, common.Response{Status: http.StatusOK, Message: "OK", Data: snap})
	}

	code := http.StatusInternalServerError
	var v *validation.Violation
	switch {
	case errors.As(err, &v):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, submission.ErrSubmissionFailed):
		code = http.StatusBadGateway
	case errors.Is(err, wizard.ErrFinished),
		errors.Is(err, wizard.ErrSubmitting),
		errors.Is(err, wizard.ErrConfirmPending),
		errors.Is(err, wizard.ErrNoConfirm):
		code = http.StatusConflict
	case errors.Is(err, wizard.ErrInvalidPatch),
		errors.Is(err, wizard.ErrUnknownAsset),
		errors.Is(err, wizard.ErrAssetNotSelected),
		errors.Is(err, wizard.ErrUnknownCategory),
		errors.Is(err, members.ErrHeadEntryLocked),
		errors.Is(err, members.ErrEntryOpen),
		errors.Is(err, members.ErrIndexOutOfRange):
		code = http.StatusBadRequest
	}
	if code == http.StatusInternalServerError || code == http.StatusBadGateway {
		wc.Logger.Error("operasi wizard gagal", zap.Int("status", code), zap.Error(err))
	}

	msg := err.Error()
	if code == http.StatusBadGateway {
		msg = "Gagal mengirim formulir. Silakan coba lagi."
	}
	resp := common.Response{Status: code, Message: msg, Data: snap}
	if v != nil {
		resp.Data = map[string]interface{}{"violation": v, "state": snap}
	}
	return c.JSON(code, resp)
}

// CreateSession membuka sesi wizard untuk perangkat.
// POST /api/wizard/sessions
func (wc *WizardController) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := wc.bind(c, &req); err != nil {
		return badRequest(c, "Invalid request payload: "+err.Error())
	}
	sess, err := wc.Sessions.Create(c.Request().Context(), req.DeviceID)
	if errors.Is(err, services.ErrDeviceRequired) {
		return badRequest(c, err.Error())
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, common.Response{
			Status:  http.StatusInternalServerError,
			Message: "Gagal membuka sesi: " + err.Error(),
		})
	}
	return c.JSON(http.StatusCreated, common.Response{
		Status:  http.StatusCreated,
		Message: "Sesi formulir dibuka",
		Data:    sessionResponse{SessionID: sess.ID, Restored: sess.Restored, State: sess.Controller.Snapshot()},
	})
}

// GetSession GET /api/wizard/sessions/:id
func (wc *WizardController) GetSession(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	return wc.respond(c, sess.Controller.Snapshot(), nil)
}

// CloseSession DELETE /api/wizard/sessions/:id
func (wc *WizardController) CloseSession(c echo.Context) error {
	if err := wc.Sessions.Close(c.Request().Context(), c.Param("id")); err != nil {
		return c.JSON(http.StatusNotFound, common.Response{Status: http.StatusNotFound, Message: err.Error()})
	}
	return c.JSON(http.StatusOK, common.Response{Status: http.StatusOK, Message: "Sesi formulir ditutup"})
}

// PatchForm PATCH /api/wizard/sessions/:id/form
func (wc *WizardController) PatchForm(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBody))
	if err != nil {
		return badRequest(c, "Invalid request payload: "+err.Error())
	}
	snap, err := sess.Controller.Patch(raw)
	return wc.respond(c, snap, err)
}

// Advance POST /api/wizard/sessions/:id/advance
func (wc *WizardController) Advance(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	snap, err := sess.Controller.Advance(c.Request().Context())
	return wc.respond(c, snap, err)
}

// Retreat POST /api/wizard/sessions/:id/retreat
func (wc *WizardController) Retreat(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	snap, err := sess.Controller.Retreat()
	return wc.respond(c, snap, err)
}

// Confirm menjawab pertanyaan "tambah anggota lain?" di langkah 3.
// POST /api/wizard/sessions/:id/confirm
func (wc *WizardController) Confirm(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	var req confirmRequest
	if err := wc.bind(c, &req); err != nil {
		return badRequest(c, "Invalid request payload: "+err.Error())
	}
	snap, err := sess.Controller.ResolvePendingConfirm(req.AddMore)
	return wc.respond(c, snap, err)
}

// UpdateAsset memilih aset dan/atau mengisi jumlahnya.
// PUT /api/wizard/sessions/:id/assets
func (wc *WizardController) UpdateAsset(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	var req assetRequest
	if err := wc.bind(c, &req); err != nil {
		return badRequest(c, "Invalid request payload: "+err.Error())
	}
	if req.Selected == nil && req.Quantity == nil {
		return badRequest(c, "selected atau quantity wajib diisi")
	}

	snap := sess.Controller.Snapshot()
	if req.Selected != nil {
		if snap, err = sess.Controller.ToggleAsset(req.Label, *req.Selected); err != nil {
			return wc.respond(c, snap, err)
		}
	}
	if req.Quantity != nil {
		snap, err = sess.Controller.SetAssetQuantity(req.Label, *req.Quantity)
	}
	return wc.respond(c, snap, err)
}

// UpdateDisability PUT /api/wizard/sessions/:id/disability
func (wc *WizardController) UpdateDisability(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	var req disabilityRequest
	if err := wc.bind(c, &req); err != nil {
		return badRequest(c, "Invalid request payload: "+err.Error())
	}
	if req.Double == nil && req.Category == "" {
		return badRequest(c, "category atau double wajib diisi")
	}

	snap := sess.Controller.Snapshot()
	if req.Double != nil {
		if snap, err = sess.Controller.SetDoubleDisability(*req.Double); err != nil {
			return wc.respond(c, snap, err)
		}
	}
	if req.Category != "" {
		snap, err = sess.Controller.SetDisabilityCategory(req.Category, req.Values)
	}
	return wc.respond(c, snap, err)
}

// AddMember POST /api/wizard/sessions/:id/members
func (wc *WizardController) AddMember(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	snap, err := sess.Controller.AddMember()
	return wc.respond(c, snap, err)
}

// UpdateMember PUT /api/wizard/sessions/:id/members/:index
func (wc *WizardController) UpdateMember(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	i, ok := memberIndex(c)
	if !ok {
		return badRequest(c, "Index anggota tidak valid")
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBody))
	if err != nil {
		return badRequest(c, "Invalid request payload: "+err.Error())
	}
	snap, err := sess.Controller.UpdateMember(i, raw)
	return wc.respond(c, snap, err)
}

// RemoveMember DELETE /api/wizard/sessions/:id/members/:index
func (wc *WizardController) RemoveMember(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	i, ok := memberIndex(c)
	if !ok {
		return badRequest(c, "Index anggota tidak valid")
	}
	snap, err := sess.Controller.RemoveMember(i)
	return wc.respond(c, snap, err)
}

// EditMember POST /api/wizard/sessions/:id/members/:index/edit
func (wc *WizardController) EditMember(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	i, ok := memberIndex(c)
	if !ok {
		return badRequest(c, "Index anggota tidak valid")
	}
	snap, err := sess.Controller.EditMember(i)
	return wc.respond(c, snap, err)
}

// CloseMember POST /api/wizard/sessions/:id/members/close
func (wc *WizardController) CloseMember(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	snap, err := sess.Controller.CloseMember()
	return wc.respond(c, snap, err)
}

// memberValue menangani endpoint skills dan contributions yang berbentuk sama.
func (wc *WizardController) memberValue(c echo.Context, op func(ctrl *wizard.Controller, i int, v string) (wizard.Snapshot, error)) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	i, ok := memberIndex(c)
	if !ok {
		return badRequest(c, "Index anggota tidak valid")
	}
	var req valueRequest
	if err := wc.bind(c, &req); err != nil {
		return badRequest(c, "Invalid request payload: "+err.Error())
	}
	snap, err := op(sess.Controller, i, req.Value)
	return wc.respond(c, snap, err)
}

// AddSkill POST /api/wizard/sessions/:id/members/:index/skills
func (wc *WizardController) AddSkill(c echo.Context) error {
	return wc.memberValue(c, (*wizard.Controller).AddSkill)
}

// RemoveSkill DELETE /api/wizard/sessions/:id/members/:index/skills
func (wc *WizardController) RemoveSkill(c echo.Context) error {
	return wc.memberValue(c, (*wizard.Controller).RemoveSkill)
}

// AddContribution POST /api/wizard/sessions/:id/members/:index/contributions
func (wc *WizardController) AddContribution(c echo.Context) error {
	return wc.memberValue(c, (*wizard.Controller).AddContribution)
}

// RemoveContribution DELETE /api/wizard/sessions/:id/members/:index/contributions
func (wc *WizardController) RemoveContribution(c echo.Context) error {
	return wc.memberValue(c, (*wizard.Controller).RemoveContribution)
}

// Events membuka aliran event wizard lewat WebSocket. Pesan pertama berisi
// keadaan sesi saat ini.
// GET /api/wizard/sessions/:id/ws
func (wc *WizardController) Events(c echo.Context) error {
	sess, err := wc.session(c)
	if sess == nil {
		return err
	}
	initial, err := json.Marshal(map[string]interface{}{"type": "state", "state": sess.Controller.Snapshot()})
	if err != nil {
		return err
	}
	return ws.ServeWS(sess.Hub, initial)(c)
}

// LastRegistration mengembalikan nomor pendaftaran terakhir perangkat.
// GET /api/wizard/devices/:deviceId/last-registration
func (wc *WizardController) LastRegistration(c echo.Context) error {
	id, ok := wc.Sessions.LastRegistration(c.Request().Context(), c.Param("deviceId"))
	if !ok {
		return c.JSON(http.StatusNotFound, common.Response{
			Status:  http.StatusNotFound,
			Message: "Belum ada pendaftaran dari perangkat ini",
		})
	}
	return c.JSON(http.StatusOK, common.Response{
		Status:  http.StatusOK,
		Message: "Pendaftaran terakhir ditemukan",
		Data:    map[string]interface{}{"registrationId": id},
	})
}
