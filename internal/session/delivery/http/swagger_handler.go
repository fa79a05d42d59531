package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// GetSession godoc
// @Summary Get session state
// @Description Current session: anonymous or the logged-in user with token
// @Tags Session
// @Produce json
// @Param X-Session-ID header string true "Session identifier"
// @Success 200 {object} object{success=bool,data=object{user=object,token=string,is_authenticated=bool}}
// @Failure 400 {object} object{success=bool,message=string}
// @Router /session [get]
func (h *SessionHandler) GetSessionDoc() {}

// Login godoc
// @Summary Log the session in
// @Description Exchange credentials with the auth API and bind the user to this session
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session identifier"
// @Param request body object{email=string,password=string} true "Credentials"
// @Success 200 {object} object{success=bool,data=object{user=object,token=string,is_authenticated=bool}}
// @Failure 401 {object} object{success=bool,message=string}
// @Router /session/login [post]
func (h *SessionHandler) LoginDoc() {}

// Logout godoc
// @Summary Log the session out
// @Description Clears the user and token; a no-op for anonymous sessions
// @Tags Session
// @Produce json
// @Param X-Session-ID header string true "Session identifier"
// @Success 200 {object} object{success=bool,data=object{user=object,token=string,is_authenticated=bool}}
// @Router /session/logout [post]
func (h *SessionHandler) LogoutDoc() {}

// UpdateProfile godoc
// @Summary Update profile fields
// @Description Merge the provided fields into the logged-in user
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session identifier"
// @Param request body object{name=string,phone=string,address=string,avatar=string} true "Fields to change"
// @Success 200 {object} object{success=bool,data=object{user=object}}
// @Failure 400 {object} object{success=bool,message=string}
// @Router /session/user [put]
func (h *SessionHandler) UpdateProfileDoc() {}
