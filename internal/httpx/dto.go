package httpx

import (
	"encoding/json"
	"time"
)

type AddItemRequest struct {
	ID int `json:"id"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type NavigateRequest struct {
	Screen string `json:"screen"`
}

type CheckoutDraftDTO struct {
	FullName      string `json:"fullName"`
	ContactInfo   string `json:"contactInfo"`
	PaymentMethod string `json:"paymentMethod"`
}

type CatalogItemResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	ImageRef  string `json:"imageRef,omitempty"`
}

type CartLineResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ImageRef  string `json:"imageRef,omitempty"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

type ViewResponse struct {
	Screen    string             `json:"screen"`
	Title     string             `json:"title"`
	CanGoBack bool               `json:"canGoBack"`
	Lines     []CartLineResponse `json:"lines"`
	ItemCount int                `json:"itemCount"`
	Subtotal  string             `json:"subtotal"`
	Taxes     string             `json:"taxes"`
	Total     string             `json:"total"`
	Draft     CheckoutDraftDTO   `json:"draft"`
	Busy      bool               `json:"busy"`
	Notice    string             `json:"notice,omitempty"`
}

type SubmitResponse struct {
	SubmissionID string       `json:"submissionId"`
	Total        string       `json:"total"`
	View         ViewResponse `json:"view"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

type SubmissionEntryResponse struct {
	Status    string          `json:"status"`
	Step      string          `json:"step,omitempty"`
	Errors    json.RawMessage `json:"errors"`
	TraceID   string          `json:"traceId,omitempty"`
	SpanID    string          `json:"spanId,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type SubmissionHistoryResponse struct {
	SubmissionID string                    `json:"submissionId"`
	Entries      []SubmissionEntryResponse `json:"entries"`
}
