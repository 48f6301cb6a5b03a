package matchhandlers

import "net/http"

// Handlers is the HTTP surface of the match module.
type Handlers interface {
	CreateMatch(w http.ResponseWriter, r *http.Request)
	ListMatches(w http.ResponseWriter, r *http.Request)
	ListMyMatches(w http.ResponseWriter, r *http.Request)
	GetMatch(w http.ResponseWriter, r *http.Request)
	UpdateMatch(w http.ResponseWriter, r *http.Request)
	DeleteMatch(w http.ResponseWriter, r *http.Request)
	InvitePlayers(w http.ResponseWriter, r *http.Request)
	RespondToInvitation(w http.ResponseWriter, r *http.Request)
	GetResponseHistory(w http.ResponseWriter, r *http.Request)
}
