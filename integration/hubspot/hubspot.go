package hubspot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Deal stages on the default pipeline mirroring the quote lifecycle.
const (
	DealStageQuoteSent  = "presentationscheduled"
	DealStageClosedWon  = "closedwon"
	DealStageClosedLost = "closedlost"
)

// HubSpot-defined association type ids.
const (
	associationDealToContact   = 3
	associationTicketToContact = 16
)

// Client calls the HubSpot v3 CRM API with a private app token.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiToken, baseURL string) *Client {
	return &Client{
		apiToken:   apiToken,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type searchFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchFilterGroup struct {
	Filters []searchFilter `json:"filters"`
}

type searchRequest struct {
	FilterGroups []searchFilterGroup `json:"filterGroups"`
	Limit        int                 `json:"limit"`
}

type crmObject struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

type searchResponse struct {
	Total   int         `json:"total"`
	Results []crmObject `json:"results"`
}

type associationTarget struct {
	ID string `json:"id"`
}

type associationType struct {
	AssociationCategory string `json:"associationCategory"`
	AssociationTypeID   int    `json:"associationTypeId"`
}

type association struct {
	To    associationTarget `json:"to"`
	Types []associationType `json:"types"`
}

type objectRequest struct {
	Properties   map[string]string `json:"properties"`
	Associations []association     `json:"associations,omitempty"`
}

// UpsertContact creates or updates the CRM contact keyed by email and
// answers its id.
func (client *Client) UpsertContact(email, firstName, lastName, phone, company string) (string, error) {
	if email == "" {
		return "", errors.New("missing email for hubspot contact")
	}

	properties := map[string]string{
		"email":     email,
		"firstname": firstName,
		"lastname":  lastName,
	}
	if phone != "" {
		properties["phone"] = phone
	}
	if company != "" {
		properties["company"] = company
	}

	contactID, err := client.searchContactByEmail(email)
	if err != nil {
		return "", err
	}

	if contactID != "" {
		var updated crmObject
		err = client.doRequest("PATCH", "/crm/v3/objects/contacts/"+contactID,
			objectRequest{Properties: properties}, &updated)
		if err != nil {
			return "", err
		}
		return contactID, nil
	}

	var created crmObject
	err = client.doRequest("POST", "/crm/v3/objects/contacts",
		objectRequest{Properties: properties}, &created)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (client *Client) searchContactByEmail(email string) (string, error) {
	payload := searchRequest{
		FilterGroups: []searchFilterGroup{{
			Filters: []searchFilter{{
				PropertyName: "email",
				Operator:     "EQ",
				Value:        email,
			}},
		}},
		Limit: 1,
	}

	var result searchResponse
	err := client.doRequest("POST", "/crm/v3/objects/contacts/search", payload, &result)
	if err != nil {
		return "", err
	}
	if result.Total == 0 || len(result.Results) == 0 {
		return "", nil
	}
	return result.Results[0].ID, nil
}

// CreateDeal opens a deal for a generated quote, associated to the
// customer contact.
func (client *Client) CreateDeal(dealName string, amount float64, contactID string) (string, error) {
	if dealName == "" {
		return "", errors.New("missing deal name")
	}

	payload := objectRequest{
		Properties: map[string]string{
			"dealname":  dealName,
			"amount":    fmt.Sprintf("%.2f", amount),
			"dealstage": DealStageQuoteSent,
		},
	}
	if contactID != "" {
		payload.Associations = []association{{
			To: associationTarget{ID: contactID},
			Types: []associationType{{
				AssociationCategory: "HUBSPOT_DEFINED",
				AssociationTypeID:   associationDealToContact,
			}},
		}}
	}

	var created crmObject
	err := client.doRequest("POST", "/crm/v3/objects/deals", payload, &created)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (client *Client) UpdateDealStage(dealID, stage string) error {
	if dealID == "" || stage == "" {
		return errors.New("missing deal id or stage")
	}

	payload := objectRequest{Properties: map[string]string{"dealstage": stage}}

	var updated crmObject
	return client.doRequest("PATCH", "/crm/v3/objects/deals/"+dealID, payload, &updated)
}

// CreateTicket opens a support ticket, used when a customer rejects a
// quote so sales can follow up.
func (client *Client) CreateTicket(subject, content, contactID string) (string, error) {
	if subject == "" {
		return "", errors.New("missing ticket subject")
	}

	payload := objectRequest{
		Properties: map[string]string{
			"subject":           subject,
			"content":           content,
			"hs_pipeline":       "0",
			"hs_pipeline_stage": "1",
		},
	}
	if contactID != "" {
		payload.Associations = []association{{
			To: associationTarget{ID: contactID},
			Types: []associationType{{
				AssociationCategory: "HUBSPOT_DEFINED",
				AssociationTypeID:   associationTicketToContact,
			}},
		}}
	}

	var created crmObject
	err := client.doRequest("POST", "/crm/v3/objects/tickets", payload, &created)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (client *Client) doRequest(method, path string, payload interface{}, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	request, err := http.NewRequest(method, client.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		log.WithError(err).Error("Failed to create request to hubspot")
		return errors.Wrap(err, "create hubspot request")
	}
	request.Header.Set("Content-Type", "application/json; charset=utf-8")
	request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", client.apiToken))

	resp, err := client.httpClient.Do(request)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("Failed request to hubspot")
		return errors.Wrap(err, "hubspot request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := ioutil.ReadAll(resp.Body)
		log.WithFields(log.Fields{
			"path":   path,
			"status": resp.StatusCode,
			"body":   string(respBody),
		}).Error("Hubspot request failed with non 2xx response")
		return fmt.Errorf("hubspot request failed with status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			log.WithError(err).Error("Failed to decode json response from hubspot")
			return errors.Wrap(err, "decode hubspot response")
		}
	}
	return nil
}
