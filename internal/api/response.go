package api

import (
	"encoding/json"
	"net/http"
)

// Response is a standard API response wrapper.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{Data: data}
	json.NewEncoder(w).Encode(resp)
}

// JSONError writes a JSON error response.
func JSONError(w http.ResponseWriter, err *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)

	resp := Response{Error: err}
	json.NewEncoder(w).Encode(resp)
}

// Created writes a 201 Created response.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// OK writes a 200 OK response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// ListResponse wraps a list with its size.
type ListResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
}

// LevelResponse describes one skill level.
type LevelResponse struct {
	Level   string `json:"level"`
	Label   string `json:"label"`
	Summary string `json:"summary"`
	Count   int    `json:"count"`
}

// PostResponse is a blog post as exposed by the API.
type PostResponse struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Category    string `json:"category"`
	ReadTime    string `json:"read_time"`
	PublishDate string `json:"publish_date"`
	Featured    bool   `json:"featured"`
	ImageURL    string `json:"image_url,omitempty"`
	HTML        string `json:"html,omitempty"`
}

// SubscriberResponse confirms a newsletter signup.
type SubscriberResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}
