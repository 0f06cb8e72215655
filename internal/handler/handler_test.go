package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Eursukkul/rental-backoffice/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceipt_Handler(t *testing.T) {
	svc := &mockDocumentService{
		receiptFn: func(ctx context.Context, bookingID uint) (*service.File, error) {
			return &service.File{Name: "receipt_4.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}, nil
		},
	}

	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("4")

	require.NoError(t, NewDocumentHandler(svc).Receipt(c))
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="receipt_4.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "%PDF", rec.Body.String())
}

func TestReceivables_Handler_BadFormat(t *testing.T) {
	var gotFormat string
	svc := &mockDocumentService{
		receivablesFn: func(ctx context.Context, format string) (*service.File, error) {
			gotFormat = format
			return nil, service.ErrInvalidFormat
		},
	}

	e := newEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/reports/receivables?format=csv", nil), httptest.NewRecorder())

	err := NewDocumentHandler(svc).Receivables(c)

	assert.Equal(t, "csv", gotFormat)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestSettings_Handler(t *testing.T) {
	svc := &mockSettingsService{values: map[string]string{service.SettingContractTemplate: "old"}}
	e := newEcho()

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"value":"new {tenant_name}"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("key")
	c.SetParamValues(service.SettingContractTemplate)

	require.NoError(t, NewSettingsHandler(svc).UpdateSetting(c))
	assert.Equal(t, "new {tenant_name}", svc.values[service.SettingContractTemplate])

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"value":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c = e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("key")
	c.SetParamValues("theme")
	err := NewSettingsHandler(svc).UpdateSetting(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, NewSettingsHandler(svc).ListSettings(c))
	var all map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Equal(t, "new {tenant_name}", all[service.SettingContractTemplate])
}

func TestNotify_Handler(t *testing.T) {
	svc := &mockNotificationService{
		sendFn: func(ctx context.Context, bookingID uint, kind string) (*service.Message, error) {
			if bookingID == 2 {
				return nil, service.ErrNoPhone
			}
			return &service.Message{BookingID: bookingID, Kind: kind, Text: "hi", Link: "https://wa.me/55?text=hi"}, nil
		},
	}
	e := newEcho()

	send := func(id, body string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		return rec, NewNotificationHandler(svc).Notify(c)
	}

	rec, err := send("1", `{"kind":"reminder"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	var msg service.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "reminder", msg.Kind)

	_, err = send("1", `{"kind":"birthday"}`)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	_, err = send("2", `{"kind":"confirmation"}`)
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
}
