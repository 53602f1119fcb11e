package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/sirupsen/logrus"
)

var logger = logrus.StandardLogger().WithField("module", "handlers")

func sendErrorResponse(w http.ResponseWriter, route, message string) {
	sendErrorWithCodeResponse(w, route, message, http.StatusBadRequest)
}

func sendServerErrorResponse(w http.ResponseWriter, route, message string) {
	sendErrorWithCodeResponse(w, route, message, http.StatusInternalServerError)
}

func sendErrorWithCodeResponse(w http.ResponseWriter, route, message string, errorcode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errorcode)
	j := json.NewEncoder(w)
	response := &types.ApiResponse{}
	response.Status = "ERROR: " + message
	err := j.Encode(response)

	if err != nil {
		logger.Errorf("error serializing json error for API %v route: %v", route, err)
	}
}

func sendOKResponse(w http.ResponseWriter, route string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	j := json.NewEncoder(w)
	response := &types.ApiResponse{}
	response.Status = "OK"
	response.Data = data
	err := j.Encode(response)

	if err != nil {
		logger.Errorf("error serializing json data for API %v route: %v", route, err)
	}
}
