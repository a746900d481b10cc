package httptransport

import "time"

type CreatePaymentIntentRequest struct {
	PodcastID string `json:"podcastId"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	AmountCents     int64  `json:"amountCents"`
	Currency        string `json:"currency"`
}

type ConfirmPurchaseRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

type PurchaseDTO struct {
	ID              string     `json:"id"`
	PodcastID       string     `json:"podcastId"`
	PodcastTitle    string     `json:"podcastTitle,omitempty"`
	PodcastSlug     string     `json:"podcastSlug,omitempty"`
	CategoryName    string     `json:"categoryName,omitempty"`
	AmountCents     int64      `json:"amountCents"`
	Currency        string     `json:"currency"`
	PaymentIntentID string     `json:"paymentIntentId"`
	Status          string     `json:"status"`
	PurchasedAt     *time.Time `json:"purchasedAt,omitempty"`
}

type ConfirmPurchaseResponse struct {
	Purchase PurchaseDTO `json:"purchase"`
	Replayed bool        `json:"replayed"`
}

type ListPurchasesResponse struct {
	Items []PurchaseDTO `json:"items"`
}
