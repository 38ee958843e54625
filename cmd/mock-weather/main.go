// Command mock-weather is a sample HTTP tool endpoint for exercising
// the shim against a remote backend. It answers weather lookups with a
// static temperature so responses stay predictable in tests.
package main

import (
	"encoding/json"
	"flag"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/toolfront/mcp-shim/internal"
)

type weatherRequest struct {
	Location string `json:"location"`
	Unit     string `json:"unit"`
}

type weatherResponse struct {
	Location    string  `json:"location"`
	Unit        string  `json:"unit"`
	Temperature float64 `json:"temperature"`
	Conditions  string  `json:"conditions"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

const baseTempFahrenheit = 72.0

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func scoreHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "Method not allowed."})
		return
	}

	var req weatherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid JSON body."})
		return
	}

	if req.Location == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Missing 'location' field."})
		return
	}
	unit := strings.ToLower(req.Unit)
	if unit == "" {
		unit = "fahrenheit"
	}
	if unit != "celsius" && unit != "fahrenheit" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid 'unit' value."})
		return
	}

	temperature := baseTempFahrenheit
	if unit == "celsius" {
		temperature = math.Round((baseTempFahrenheit-32)*5/9*10) / 10
	}

	writeJSON(w, http.StatusOK, weatherResponse{
		Location:    req.Location,
		Unit:        unit,
		Temperature: temperature,
		Conditions:  "clear",
	})
}

func main() {
	addr := flag.String("addr", "0.0.0.0:8000", "listen address")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/score", scoreHandler)

	internal.Logf("mock-weather listening on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		internal.LogError("Server error: %v", err)
		os.Exit(1)
	}
}
