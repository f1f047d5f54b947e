package types

import "negochat/internal/models"

type TokenRequest struct {
	Username    string `json:"username"`
	IsAnonymous bool   `json:"isAnonymous"`
}

type TokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type ArchiveMessageRequest struct {
	Message string `json:"message"`
	RoomID  string `json:"roomId"`
}

type NegotiationRequest struct {
	Situation string `json:"situation"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type ConversationRequest struct {
	Conversation string `json:"conversation"`
}

type MarketInsightsRequest struct {
	PropertyDetails map[string]any `json:"propertyDetails"`
}

type MarketQueryRequest struct {
	Location        string         `json:"location"`
	PropertyType    string         `json:"propertyType"`
	PropertyDetails map[string]any `json:"propertyDetails,omitempty"`
	Timeframe       string         `json:"timeframe,omitempty"`
}
