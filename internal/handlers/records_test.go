package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"dicel-erp/internal/errs"
	"dicel-erp/internal/query"
	"dicel-erp/internal/resource"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func customersFixture(svc *stubRecords) *fixture {
	f := newFixture()
	svc.entity = resource.Customers
	f.records = []RecordService{svc}
	return f
}

func TestRecordRoutesRequireToken(t *testing.T) {
	f := customersFixture(&stubRecords{})
	rec := f.do(t, http.MethodGet, "/api/customers", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeBody(t, rec)
	require.False(t, env.Success)
	require.Equal(t, errs.KindUnauthorized, env.Kind)
}

func TestListRecordsParsesQuery(t *testing.T) {
	var got query.ListOptions
	f := customersFixture(&stubRecords{
		listFn: func(opts query.ListOptions) (query.Page, error) {
			got = opts
			return query.NewPage([]map[string]any{{"id": "cus-1", "name": "Acme"}}, 31, opts), nil
		},
	})
	rec := f.do(t, http.MethodGet, "/api/customers?page=2&limit=500&search=acme", "emp-user", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, got.Page)
	require.Equal(t, 100, got.Limit)
	require.Equal(t, "acme", got.Search)
	require.False(t, got.IncludeInactive)

	env := decodeBody(t, rec)
	require.True(t, env.Success)
	var page query.Page
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Equal(t, 31, page.Total)
	require.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 1)
}

func TestListRecordsRejectsBadPage(t *testing.T) {
	f := customersFixture(&stubRecords{})
	rec := f.do(t, http.MethodGet, "/api/customers?page=zero", "emp-user", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, errs.KindValidation, decodeBody(t, rec).Kind)
}

func TestGetRecordNotFound(t *testing.T) {
	f := customersFixture(&stubRecords{
		getFn: func(id string) (map[string]any, error) { return nil, errs.NotFound("Customer") },
	})
	rec := f.do(t, http.MethodGet, "/api/customers/missing", "emp-user", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeBody(t, rec)
	require.Equal(t, "Customer not found", env.Error)
	require.Equal(t, errs.KindNotFound, env.Kind)
}

func TestInternalErrorsAreMasked(t *testing.T) {
	f := customersFixture(&stubRecords{
		getFn: func(id string) (map[string]any, error) {
			return nil, errors.Wrap(errors.New("pq: connection reset"), "customers: get")
		},
	})
	rec := f.do(t, http.MethodGet, "/api/customers/cus-1", "emp-user", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeBody(t, rec)
	require.Equal(t, "Internal server error", env.Error)
	require.NotContains(t, rec.Body.String(), "connection reset")
}

func TestCreateRecordPassesActor(t *testing.T) {
	var actor string
	var body map[string]any
	f := customersFixture(&stubRecords{
		createFn: func(actorID string, b map[string]any) (map[string]any, error) {
			actor, body = actorID, b
			return map[string]any{"id": "cus-1", "name": b["name"]}, nil
		},
	})
	rec := f.do(t, http.MethodPost, "/api/customers", "emp-user", `{"name":"Acme","creditLimit":1500.50}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "emp-user", actor)
	require.Equal(t, "Acme", body["name"])
	require.Equal(t, json.Number("1500.50"), body["creditLimit"])
}

func TestCreateRecordRejectsMalformedBody(t *testing.T) {
	f := customersFixture(&stubRecords{})
	for _, payload := range []string{"", "{", "[1,2]", `{"name":"a"} {"name":"b"}`} {
		rec := f.do(t, http.MethodPost, "/api/customers", "emp-user", payload)
		require.Equal(t, http.StatusBadRequest, rec.Code, payload)
		require.Equal(t, errs.KindValidation, decodeBody(t, rec).Kind, payload)
	}
}

func TestUpdateRecordAcceptsPutAndPatch(t *testing.T) {
	var ids []string
	f := customersFixture(&stubRecords{
		updateFn: func(_ string, id string, b map[string]any) (map[string]any, error) {
			ids = append(ids, id)
			return map[string]any{"id": id}, nil
		},
	})
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/api/customers/cus-1", "emp-user", `{"phone":"555"}`).Code)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPatch, "/api/customers/cus-2", "emp-user", `{"phone":null}`).Code)
	require.Equal(t, []string{"cus-1", "cus-2"}, ids)
}

func TestDeleteRecordReportsDeactivation(t *testing.T) {
	f := customersFixture(&stubRecords{
		deleteFn: func(_ string, id string) error { return nil },
	})
	rec := f.do(t, http.MethodDelete, "/api/customers/cus-1", "emp-user", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var data map[string]any
	require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &data))
	require.Equal(t, "cus-1", data["id"])
	require.Equal(t, false, data["isActive"])
}

func TestDeleteRecordGuardViolation(t *testing.T) {
	f := customersFixture(&stubRecords{
		deleteFn: func(string, string) error { return errs.BusinessRule("Cannot delete customer with active invoices") },
	})
	rec := f.do(t, http.MethodDelete, "/api/customers/cus-1", "emp-user", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, errs.KindBusinessRule, decodeBody(t, rec).Kind)
}

func TestRecordStats(t *testing.T) {
	f := customersFixture(&stubRecords{})
	rec := f.do(t, http.MethodGet, "/api/customers/stats", "emp-user", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"total":2,"by":{}}`, string(decodeBody(t, rec).Data))
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	f := newFixture()
	rec := f.do(t, http.MethodGet, "/api/nowhere", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, errs.KindNotFound, decodeBody(t, rec).Kind)
}
