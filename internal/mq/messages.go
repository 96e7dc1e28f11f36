package mq

import (
	"encoding/json"
	"fmt"
)

// Tipo de comando enviado via RabbitMQ
type CommandType string

const (
	CommandAddResource       CommandType = "AddResource"
	CommandAddRequester      CommandType = "AddRequester"
	CommandBook              CommandType = "Book"
	CommandCancel            CommandType = "Cancel"
	CommandCancelReservation CommandType = "CancelReservation"
	CommandListResources     CommandType = "ListResources"
	CommandListRequesters    CommandType = "ListRequesters"
	CommandListReservations  CommandType = "ListReservations"
	CommandListAvailable     CommandType = "ListAvailable"
)

// Envelope genérico de comando. Os payloads são os tipos do pacote wire.
type CommandEnvelope struct {
	Type    CommandType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Envelope genérico de resposta
type Response struct {
	OK      bool            `json:"ok"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func responseType(t CommandType) string {
	return string(t) + "Response"
}

// RemoteError é o erro devolvido pelo worker, com o código do domínio.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
