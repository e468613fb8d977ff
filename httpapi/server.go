// Package httpapi exposes a session.Session over HTTP for a hosting
// front-end: step it, reset it, and read back a snapshot of both engines.
// It is intentionally thin - visualization, playback timing and styling
// are the front-end's job, not this package's.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"runtime"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/vmpagesim/session"
)

// Server wraps a Session and serves it over HTTP.
type Server struct {
	sess *session.Session
}

// NewServer wraps sess.
func NewServer(sess *session.Session) *Server {
	return &Server{sess: sess}
}

// Router builds the mux.Router this server answers on:
//
//	POST /api/step     - apply the next instruction to both engines
//	POST /api/reset     - rewind both engines to the start of the stream
//	GET  /api/snapshot  - read both engines' current state
//	GET  /api/host      - report the simulator process's own CPU/RAM usage
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/step", s.step).Methods(http.MethodPost)
	r.HandleFunc("/api/reset", s.reset).Methods(http.MethodPost)
	r.HandleFunc("/api/snapshot", s.snapshot).Methods(http.MethodGet)
	r.HandleFunc("/api/host", s.host).Methods(http.MethodGet)

	return r
}

// hostStats reports the simulator process's own resource usage, distinct
// from the simulated Metrics on a Session: this is what the operator's
// machine is spending to run the simulation, not what the simulated
// workload allocated.
type hostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryRSSKB   uint64  `json:"memory_rss_kb"`
	NumGoroutines int     `json:"num_goroutines"`
}

func (s *Server) host(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPct, _ := proc.CPUPercent()
	memInfo, _ := proc.MemoryInfo()

	stats := hostStats{CPUPercent: cpuPct, NumGoroutines: runtime.NumGoroutine()}
	if memInfo != nil {
		stats.MemoryRSSKB = memInfo.RSS / 1024
	}

	writeJSON(w, stats)
}

func (s *Server) step(w http.ResponseWriter, _ *http.Request) {
	outcome := s.sess.Step()
	writeJSON(w, struct {
		Outcome  session.StepOutcome `json:"outcome"`
		Snapshot session.Snapshot    `json:"snapshot"`
	}{
		Outcome:  outcome,
		Snapshot: s.sess.Snapshot(),
	})
}

func (s *Server) reset(w http.ResponseWriter, _ *http.Request) {
	s.sess.Reset()
	writeJSON(w, s.sess.Snapshot())
}

func (s *Server) snapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.sess.Snapshot())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("httpapi: encoding response: %v", err)
	}
}
