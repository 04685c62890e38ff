package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"entsearch/catalogue"
	"entsearch/shell"

	"github.com/gorilla/mux"
)

// respondJSON writes a JSON response
func (a *API) respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.logger.Errorw("Failed to encode JSON response",
			"error", err,
			"data_type", fmt.Sprintf("%T", data))
	}
}

// mountApplication godoc
//
//	@Summary		Mount application
//	@Description	Resolves the route, mounts the owning application and returns the rendered page. The Authorization header is forwarded to the config data request.
//	@Tags			applications
//	@Produce		json
//	@Security		EnterpriseSearchAuth
//	@Param			path	path		string	true	"Application route below /app/"
//	@Success		200		{object}	views.Page
//	@Header			200		{string}	X-Mount-Id	"Id of the created mount"
//	@Failure		404		{string}	string		"Application not found"
//	@Failure		500		{string}	string		"Failed to mount application"
//	@Router			/app/{path} [get]
func (a *API) mountApplication(w http.ResponseWriter, r *http.Request) {
	var out bytes.Buffer
	mountID, err := a.shell.Navigate(r.Context(), r.URL.Path, shell.MountParams{
		Element:       &out,
		Authorization: r.Header.Get("Authorization"),
	})
	if err != nil {
		switch {
		case errors.Is(err, shell.ErrNoRoute), errors.Is(err, shell.ErrUnknownApp):
			writeError(w, http.StatusNotFound, "Application not found", err, a.logger)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to mount application", err, a.logger)
		}
		return
	}

	w.Header().Set(MountIDHeader, mountID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Bytes()); err != nil {
		a.logger.Warnw("Failed to write rendered application",
			"mount_id", mountID,
			"error", err)
	}
}

// unmountApplication godoc
//
//	@Summary		Unmount application
//	@Description	Tears down a mount created by a navigation
//	@Tags			applications
//	@Param			id	path	string	true	"Mount ID"
//	@Success		204
//	@Failure		404	{string}	string	"Mount not found"
//	@Router			/api/mounts/{id} [delete]
func (a *API) unmountApplication(w http.ResponseWriter, r *http.Request) {
	mountID := mux.Vars(r)["id"]

	if err := a.shell.Unmount(mountID); err != nil {
		if errors.Is(err, shell.ErrMountNotFound) {
			writeError(w, http.StatusNotFound, "Mount not found", err, a.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to unmount application", err, a.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getApplications godoc
//
//	@Summary		List applications
//	@Description	Returns the registered applications in registration order
//	@Tags			applications
//	@Produce		json
//	@Success		200	{array}	shell.App
//	@Router			/api/applications [get]
func (a *API) getApplications(w http.ResponseWriter, r *http.Request) {
	apps := a.shell.Applications()
	if apps == nil {
		apps = []shell.App{}
	}
	a.respondJSON(w, apps, http.StatusOK)
}

// catalogueResponse is the body of GET /api/catalogue
type catalogueResponse struct {
	Solutions []catalogue.Solution `json:"solutions"`
	Features  []catalogue.Feature  `json:"features"`
}

// getCatalogue godoc
//
//	@Summary		Get feature catalogue
//	@Description	Returns the catalogue solutions and features. Both lists are empty when the catalogue is disabled.
//	@Tags			catalogue
//	@Produce		json
//	@Success		200	{object}	catalogueResponse
//	@Failure		500	{string}	string	"Failed to list catalogue"
//	@Router			/api/catalogue [get]
func (a *API) getCatalogue(w http.ResponseWriter, r *http.Request) {
	resp := catalogueResponse{
		Solutions: []catalogue.Solution{},
		Features:  []catalogue.Feature{},
	}

	if a.catalogue != nil {
		solutions, err := a.catalogue.Solutions()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list catalogue solutions", err, a.logger)
			return
		}
		features, err := a.catalogue.Features()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list catalogue features", err, a.logger)
			return
		}
		if solutions != nil {
			resp.Solutions = solutions
		}
		if features != nil {
			resp.Features = features
		}
	}

	a.respondJSON(w, resp, http.StatusOK)
}

// getApplicationData godoc
//
//	@Summary		Get application data
//	@Description	Returns a snapshot of the config data shared by the applications
//	@Tags			applications
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Router			/api/application_data [get]
func (a *API) getApplicationData(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, a.initial.Data().Snapshot(), http.StatusOK)
}

// healthCheck godoc
//
//	@Summary		Health check
//	@Description	Reports liveness and the state of the config data bootstrap
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Router			/health [get]
func (a *API) healthCheck(w http.ResponseWriter, r *http.Request) {
	data := a.initial.Data()
	a.respondJSON(w, map[string]interface{}{
		"status": "ok",
		"enterprise_search": map[string]interface{}{
			"host_configured":  a.initial.Host() != "",
			"initialized":      a.initial.Initialized(),
			"error_connecting": data.ErrorConnecting(),
		},
	}, http.StatusOK)
}
