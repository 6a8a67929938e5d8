package travel_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	availabilityerrors "github.com/danny20232023/hris-sub007/internal/availability/errors"
	"github.com/danny20232023/hris-sub007/internal/travel"
	travelerrors "github.com/danny20232023/hris-sub007/internal/travel/errors"
	travelMock "github.com/danny20232023/hris-sub007/internal/travel/mock"
	"github.com/danny20232023/hris-sub007/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newJSONContext(t *testing.T, method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestTravelHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.NewString()

	t.Run("created with number", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := travelMock.NewMockService(ctrl)
		h := travel.NewHandler(svc)

		req := travel.CreateTravelRequest{EmployeeIDs: []string{employeeID}, Dates: []string{"2025-03-10"}, Destination: "Iloilo"}
		svc.EXPECT().Create(gomock.Any(), "company-1", "staff-1", req).
			Return(travel.TravelResponse{ID: "travel-1", TravelNumber: "TO-000001"}, nil)

		c, w := newJSONContext(t, http.MethodPost, "/travel-requests", req)
		c.Set("company_id", "company-1")
		c.Set("employee_id", "staff-1")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got travel.TravelResponse
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
		assert.Equal(t, "TO-000001", got.TravelNumber)
	})

	t.Run("no travellers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := travel.NewHandler(travelMock.NewMockService(ctrl))

		c, w := newJSONContext(t, http.MethodPost, "/travel-requests", map[string]any{"employee_ids": []string{}, "dates": []string{"2025-03-10"}})
		c.Set("company_id", "company-1")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("date conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := travelMock.NewMockService(ctrl)
		h := travel.NewHandler(svc)

		svc.EXPECT().Create(gomock.Any(), "company-1", "staff-1", gomock.Any()).
			Return(travel.TravelResponse{}, availabilityerrors.ErrDateConflict)

		c, w := newJSONContext(t, http.MethodPost, "/travel-requests", travel.CreateTravelRequest{EmployeeIDs: []string{employeeID}, Dates: []string{"2025-03-10"}})
		c.Set("company_id", "company-1")
		c.Set("employee_id", "staff-1")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "DATE_CONFLICT", env.Error.Code)
	})
}

func TestTravelHandler_CreateFromPortal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := travelMock.NewMockService(ctrl)
	h := travel.NewHandler(svc)

	submitter := uuid.NewString()
	svc.EXPECT().CreateFromPortal(gomock.Any(), "company-1", submitter, gomock.Any()).
		Return(travel.TravelResponse{}, travelerrors.ErrTravelNotAllowed)

	c, w := newJSONContext(t, http.MethodPost, "/portal/travel-requests", travel.CreateTravelRequest{
		EmployeeIDs: []string{submitter},
		Dates:       []string{"2025-03-10"},
	})
	c.Set("company_id", "company-1")
	c.Set("user_id_validated", submitter)

	h.CreateFromPortal(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "PERMISSION_DENIED", decode(t, w).Error.Code)
}

func TestTravelHandler_Validate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := travelMock.NewMockService(ctrl)
	h := travel.NewHandler(svc)

	blocked := uuid.NewString()
	svc.EXPECT().Validate(gomock.Any(), "company-1", gomock.Any()).
		Return(validation.Result{Reason: validation.ReasonDateConflict, EmployeeIDs: []string{blocked}}, nil)

	c, w := newJSONContext(t, http.MethodPost, "/travel-requests/validate", travel.ValidateTravelRequest{
		EmployeeIDs: []string{blocked, uuid.NewString()},
		Dates:       []string{"2025-03-10"},
	})
	c.Set("company_id", "company-1")

	h.Validate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got validation.Result
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.False(t, got.Accepted)
	assert.Equal(t, []string{blocked}, got.EmployeeIDs)
}

func TestTravelHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := travelMock.NewMockService(ctrl)
	h := travel.NewHandler(svc)

	employeeID := uuid.NewString()
	svc.EXPECT().GetAll(gomock.Any(), "company-1", travel.TravelFilter{EmployeeID: employeeID}).
		Return([]travel.TravelResponse{{ID: "a"}, {ID: "b"}}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/travel-requests?employee_id="+employeeID, nil)
	c.Set("company_id", "company-1")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(2), env.Meta.Total)
}

func TestTravelHandler_Delete_Approved(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := travelMock.NewMockService(ctrl)
	h := travel.NewHandler(svc)

	svc.EXPECT().Delete(gomock.Any(), "company-1", "staff-1", "travel-1").Return(travelerrors.ErrApprovedNotDeletable)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/travel-requests/travel-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "travel-1"}}
	c.Set("company_id", "company-1")
	c.Set("employee_id", "staff-1")

	h.Delete(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_STATE", decode(t, w).Error.Code)
}
