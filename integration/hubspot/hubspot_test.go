package hubspot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpsertContactCreatesWhenMissing(t *testing.T) {
	var sawSearch, sawCreate bool
	var createdProperties map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/crm/v3/objects/contacts/search":
			sawSearch = true
			json.NewEncoder(w).Encode(searchResponse{Total: 0})
		case "/crm/v3/objects/contacts":
			sawCreate = true
			assert.Equal(t, "POST", r.Method)
			var payload objectRequest
			json.NewDecoder(r.Body).Decode(&payload)
			createdProperties = payload.Properties
			json.NewEncoder(w).Encode(crmObject{ID: "501"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL)
	contactID, err := client.UpsertContact("customer@example.com", "Jane", "Doe", "555-0101", "Acme Logistics")
	assert.Nil(t, err)
	assert.Equal(t, "501", contactID)
	assert.True(t, sawSearch)
	assert.True(t, sawCreate)
	assert.Equal(t, "customer@example.com", createdProperties["email"])
	assert.Equal(t, "Acme Logistics", createdProperties["company"])
}

func TestUpsertContactPatchesWhenFound(t *testing.T) {
	var sawPatch bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crm/v3/objects/contacts/search":
			json.NewEncoder(w).Encode(searchResponse{
				Total:   1,
				Results: []crmObject{{ID: "777"}},
			})
		case "/crm/v3/objects/contacts/777":
			sawPatch = true
			assert.Equal(t, "PATCH", r.Method)
			json.NewEncoder(w).Encode(crmObject{ID: "777"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL)
	contactID, err := client.UpsertContact("customer@example.com", "Jane", "Doe", "", "")
	assert.Nil(t, err)
	assert.Equal(t, "777", contactID)
	assert.True(t, sawPatch)
}

func TestCreateDealAssociatesContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crm/v3/objects/deals", r.URL.Path)

		var payload objectRequest
		json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, "NXT-000042 Acme Logistics", payload.Properties["dealname"])
		assert.Equal(t, "2255.50", payload.Properties["amount"])
		assert.Equal(t, DealStageQuoteSent, payload.Properties["dealstage"])
		assert.Len(t, payload.Associations, 1)
		assert.Equal(t, "501", payload.Associations[0].To.ID)
		assert.Equal(t, associationDealToContact, payload.Associations[0].Types[0].AssociationTypeID)

		json.NewEncoder(w).Encode(crmObject{ID: "9001"})
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL)
	dealID, err := client.CreateDeal("NXT-000042 Acme Logistics", 2255.50, "501")
	assert.Nil(t, err)
	assert.Equal(t, "9001", dealID)
}

func TestUpdateDealStage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crm/v3/objects/deals/9001", r.URL.Path)
		assert.Equal(t, "PATCH", r.Method)

		var payload objectRequest
		json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, DealStageClosedWon, payload.Properties["dealstage"])

		json.NewEncoder(w).Encode(crmObject{ID: "9001"})
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL)
	err := client.UpdateDealStage("9001", DealStageClosedWon)
	assert.Nil(t, err)
}

func TestDoRequestNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer server.Close()

	client := NewClient("bad-token", server.URL)
	_, err := client.CreateDeal("NXT-000001", 100, "")
	assert.NotNil(t, err)
}

func TestCreateTicket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crm/v3/objects/tickets", r.URL.Path)

		var payload objectRequest
		json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, "Quote NXT-000042 rejected", payload.Properties["subject"])
		assert.Len(t, payload.Associations, 1)
		assert.Equal(t, associationTicketToContact, payload.Associations[0].Types[0].AssociationTypeID)

		json.NewEncoder(w).Encode(crmObject{ID: "3003"})
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL)
	ticketID, err := client.CreateTicket("Quote NXT-000042 rejected", "Customer rejected the installation quote.", "501")
	assert.Nil(t, err)
	assert.Equal(t, "3003", ticketID)
}
