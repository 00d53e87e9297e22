package event

import (
	"time"
)

type CustomerEventPayload struct {
	CustomerID int64     `json:"customerId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	CPF        string    `json:"cpf"`
	Email      string    `json:"email"`
	Income     string    `json:"income"`
	ZipCode    string    `json:"zipCode"`
	Street     string    `json:"street"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerDeletedEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	CustomerID int64     `json:"customerId"`
}

type CreditEventPayload struct {
	CreditID             int64     `json:"creditId"`
	CreditCode           string    `json:"creditCode"`
	CreditValue          string    `json:"creditValue"`
	NumberOfInstallments int       `json:"numberOfInstallments"`
	Status               string    `json:"status"`
	CustomerID           int64     `json:"customerId"`
	DayFirstInstallment  time.Time `json:"dayFirstInstallment"`
	CreatedAt            time.Time `json:"createdAt"`
}

type CreditCreatedEvent struct {
	Timestamp time.Time          `json:"timestamp"`
	Payload   CreditEventPayload `json:"payload"`
}
