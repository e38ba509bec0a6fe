package parse

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/bchastanier/esltrack/internal/domain"
	"github.com/bchastanier/esltrack/internal/store"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ParseEslStore {
	t.Helper()
	return NewParseEslStore(newTestClient(t, "rest-key"), DefaultCollection, nil)
}

func newTestEsl(t *testing.T) *domain.Esl {
	t.Helper()

	esl, err := domain.NewEsl(domain.EslTypeHanshow, "DEV-42", "abc123")
	require.NoError(t, err)
	esl.Name = "Cabillaud"
	esl.Price = "12.90"
	return esl
}

func TestNewParseEslStore(t *testing.T) {
	t.Parallel()

	t.Run("nil client panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			NewParseEslStore(nil, DefaultCollection, nil)
		})
	})

	t.Run("empty collection falls back to default", func(t *testing.T) {
		client, err := NewClient(Config{ApplicationID: "esl-app", ServerURL: testServerURL}, nil)
		require.NoError(t, err)

		s := NewParseEslStore(client, "", nil)
		assert.Equal(t, DefaultCollection, s.collection)
	})
}

func TestParseEslStoreSave(t *testing.T) {
	setupHTTPMock(t)

	var gotBody map[string]any
	httpmock.RegisterResponder(http.MethodPost, testServerURL+"/GenericEsl",
		func(req *http.Request) (*http.Response, error) {
			raw, err := io.ReadAll(req.Body)
			if err != nil {
				return nil, err
			}
			if err := json.Unmarshal(raw, &gotBody); err != nil {
				return nil, err
			}
			return httpmock.NewStringResponse(http.StatusCreated,
				`{"createdAt":"2024-03-15T08:30:00.000Z","objectId":"xK3nF9sQ2d"}`), nil
		})

	s := newTestStore(t)
	esl := newTestEsl(t)

	saved, err := s.Save(context.Background(), esl)

	require.NoError(t, err)
	assert.Equal(t, "xK3nF9sQ2d", saved.ObjectID)
	require.NotNil(t, saved.CreatedAt)
	assert.Equal(t,
		time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC),
		saved.CreatedAt.UTC())
	assert.False(t, saved.Printed)

	// The input record is returned untouched.
	assert.Empty(t, esl.ObjectID)
	assert.Nil(t, esl.CreatedAt)

	// Identity and timestamp belong to the remote side only.
	assert.Equal(t, "DEV-42", gotBody["serial"])
	assert.Equal(t, "abc123", gotBody["eslId"])
	assert.Equal(t, false, gotBody["printed"])
	assert.NotContains(t, gotBody, "objectId")
	assert.NotContains(t, gotBody, "createdAt")
}

func TestParseEslStoreSaveRejectsAssignedIdentity(t *testing.T) {
	setupHTTPMock(t)

	s := newTestStore(t)
	esl := newTestEsl(t)
	esl.ObjectID = "xK3nF9sQ2d"

	saved, err := s.Save(context.Background(), esl)

	assert.Nil(t, saved)
	assert.ErrorIs(t, err, store.ErrIdentityAssigned)
	assert.Zero(t, httpmock.GetTotalCallCount(), "no request must be issued")
}

func TestParseEslStoreSaveRejectsInvalidEsl(t *testing.T) {
	setupHTTPMock(t)

	s := newTestStore(t)
	esl := &domain.Esl{Type: domain.EslTypeHanshow, Serial: "DEV-42"}

	saved, err := s.Save(context.Background(), esl)

	assert.Nil(t, saved)
	assert.ErrorIs(t, err, domain.ErrEslIDEmpty)
	assert.Zero(t, httpmock.GetTotalCallCount(), "no request must be issued")
}

func TestParseEslStoreSavePlatformError(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodPost, testServerURL+"/GenericEsl",
		httpmock.NewStringResponder(http.StatusBadRequest,
			`{"code":101,"error":"invalid field"}`))

	s := newTestStore(t)

	saved, err := s.Save(context.Background(), newTestEsl(t))

	assert.Nil(t, saved)
	pe, ok := store.AsPlatformError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, pe.Status)
	assert.Equal(t, "invalid field", pe.Cause)
}

func TestParseEslStoreSaveMalformedCreatedAt(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodPost, testServerURL+"/GenericEsl",
		httpmock.NewStringResponder(http.StatusCreated,
			`{"createdAt":"not a timestamp","objectId":"xK3nF9sQ2d"}`))

	s := newTestStore(t)

	saved, err := s.Save(context.Background(), newTestEsl(t))

	assert.Nil(t, saved)
	assert.ErrorIs(t, err, store.ErrSerialization)
}

func TestParseEslStoreFindUnprintedBySerial(t *testing.T) {
	setupHTTPMock(t)

	var gotWhere string
	httpmock.RegisterResponder(http.MethodGet, `=~^https://parse\.example\.com/1/GenericEsl`,
		func(req *http.Request) (*http.Response, error) {
			gotWhere = req.URL.Query().Get("where")
			return httpmock.NewStringResponse(http.StatusOK, `{"results":[
				{"objectId":"xK3nF9sQ2d","type":"Hanshow","serial":"DEV-42","eslId":"abc123","printed":false},
				{"objectId":"qW8pL2mR7v","type":"Hanshow","serial":"DEV-42","eslId":"def456","printed":false}
			]}`), nil
		})

	s := newTestStore(t)

	esls, err := s.FindUnprintedBySerial(context.Background(), "DEV-42")

	require.NoError(t, err)
	assert.JSONEq(t, `{"serial":"DEV-42","printed":false}`, gotWhere)
	require.Len(t, esls, 2)
	assert.Equal(t, "abc123", esls[0].EslID)
	assert.False(t, esls[0].Printed)
}

func TestParseEslStoreFindUnprintedBySerialEmpty(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^https://parse\.example\.com/1/GenericEsl`,
		httpmock.NewStringResponder(http.StatusOK, `{"results":[]}`))

	s := newTestStore(t)

	esls, err := s.FindUnprintedBySerial(context.Background(), "UNKNOWN")

	require.NoError(t, err)
	assert.NotNil(t, esls)
	assert.Empty(t, esls)
}

func TestParseEslStoreMarkPrinted(t *testing.T) {
	setupHTTPMock(t)

	var gotPatch map[string]any
	httpmock.RegisterResponder(http.MethodPut, testServerURL+"/GenericEsl/xK3nF9sQ2d",
		func(req *http.Request) (*http.Response, error) {
			raw, err := io.ReadAll(req.Body)
			if err != nil {
				return nil, err
			}
			if err := json.Unmarshal(raw, &gotPatch); err != nil {
				return nil, err
			}
			return httpmock.NewStringResponse(http.StatusOK,
				`{"updatedAt":"2024-03-15T09:00:00.000Z"}`), nil
		})

	s := newTestStore(t)
	esl := newTestEsl(t)
	esl.ObjectID = "xK3nF9sQ2d"

	printed, err := s.MarkPrinted(context.Background(), esl)

	require.NoError(t, err)
	assert.True(t, printed.Printed)
	assert.False(t, esl.Printed, "the input record is returned untouched")

	// The patch carries exactly the one flipped field.
	assert.Equal(t, map[string]any{"printed": true}, gotPatch)
}

func TestParseEslStoreMarkPrintedRequiresIdentity(t *testing.T) {
	setupHTTPMock(t)

	s := newTestStore(t)

	printed, err := s.MarkPrinted(context.Background(), newTestEsl(t))

	assert.Nil(t, printed)
	assert.ErrorIs(t, err, store.ErrMissingIdentity)
	assert.Zero(t, httpmock.GetTotalCallCount(), "no request must be issued")
}

func TestParseEslStoreMarkPrintedPlatformError(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodPut, testServerURL+"/GenericEsl/xK3nF9sQ2d",
		httpmock.NewStringResponder(http.StatusNotFound,
			`{"code":101,"error":"object not found for update"}`))

	s := newTestStore(t)
	esl := newTestEsl(t)
	esl.ObjectID = "xK3nF9sQ2d"

	printed, err := s.MarkPrinted(context.Background(), esl)

	assert.Nil(t, printed)
	assert.ErrorIs(t, err, store.ErrPlatform)
	assert.False(t, esl.Printed, "the flag must not flip when the update is rejected")
}

func TestParseEslStoreFindByDateRange(t *testing.T) {
	setupHTTPMock(t)

	var gotWhere string
	httpmock.RegisterResponder(http.MethodGet, `=~^https://parse\.example\.com/1/GenericEsl`,
		func(req *http.Request) (*http.Response, error) {
			gotWhere = req.URL.Query().Get("where")
			return httpmock.NewStringResponse(http.StatusOK, `{"results":[
				{"objectId":"xK3nF9sQ2d","type":"Hanshow","serial":"DEV-42","eslId":"abc123","printed":true}
			]}`), nil
		})

	s := newTestStore(t)

	esls, err := s.FindByDateRange(context.Background(), "DEV-42",
		"2024-03-15 00:00:00:000", "2024-03-16 00:00:00:000")

	require.NoError(t, err)
	assert.JSONEq(t,
		`{"serial":"DEV-42","createdAt":{"$gt":"2024-03-15 00:00:00:000","$lt":"2024-03-16 00:00:00:000"}}`,
		gotWhere)
	require.Len(t, esls, 1)
	assert.True(t, esls[0].Printed, "printed records still show up in range scans")
}

func TestParseEslStoreFindByDateRangeRejectsMalformedBounds(t *testing.T) {
	setupHTTPMock(t)

	s := newTestStore(t)

	tests := []struct {
		name       string
		start, end string
	}{
		{"malformed start", "2024-03-15", "2024-03-16 00:00:00:000"},
		{"malformed end", "2024-03-15 00:00:00:000", "2024-03-16T00:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			esls, err := s.FindByDateRange(context.Background(), "DEV-42", tt.start, tt.end)

			assert.Nil(t, esls)
			assert.ErrorIs(t, err, store.ErrSerialization)
		})
	}
	assert.Zero(t, httpmock.GetTotalCallCount(), "no request must be issued")
}

// Covers the full register-print cycle: a fresh record is saved, shows up
// in the unprinted scan, is marked printed, and drops out of the scan.
func TestParseEslStoreLifecycle(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodPost, testServerURL+"/GenericEsl",
		httpmock.NewStringResponder(http.StatusCreated,
			`{"createdAt":"2024-03-15T08:30:00.000Z","objectId":"xK3nF9sQ2d"}`))
	httpmock.RegisterResponder(http.MethodPut, testServerURL+"/GenericEsl/xK3nF9sQ2d",
		httpmock.NewStringResponder(http.StatusOK, `{}`))

	printed := false
	httpmock.RegisterResponder(http.MethodGet, `=~^https://parse\.example\.com/1/GenericEsl`,
		func(req *http.Request) (*http.Response, error) {
			if printed {
				return httpmock.NewStringResponse(http.StatusOK, `{"results":[]}`), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, `{"results":[
				{"objectId":"xK3nF9sQ2d","type":"Hanshow","serial":"DEV-42","eslId":"abc123","printed":false}
			]}`), nil
		})

	s := newTestStore(t)

	saved, err := s.Save(context.Background(), newTestEsl(t))
	require.NoError(t, err)

	unprinted, err := s.FindUnprintedBySerial(context.Background(), "DEV-42")
	require.NoError(t, err)
	require.Len(t, unprinted, 1)
	assert.Equal(t, saved.ObjectID, unprinted[0].ObjectID)

	_, err = s.MarkPrinted(context.Background(), unprinted[0])
	require.NoError(t, err)
	printed = true

	unprinted, err = s.FindUnprintedBySerial(context.Background(), "DEV-42")
	require.NoError(t, err)
	assert.Empty(t, unprinted)
}
