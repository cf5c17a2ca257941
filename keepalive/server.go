package keepalive

import (
	"context"
	"encoding/json"
	"errors"
	"fine-bot/metrics"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const aliveMessage = "Bot is alive!"

// Status is the body served at /status.
type Status struct {
	Uptime        string  `json:"uptime"`
	GoVersion     string  `json:"goVersion"`
	Goroutines    int     `json:"goroutines"`
	Platform      string  `json:"platform,omitempty"`
	KernelVersion string  `json:"kernelVersion,omitempty"`
	CPUCount      int     `json:"cpuCount,omitempty"`
	MemoryUsedPct float64 `json:"memoryUsedPercent,omitempty"`
	MemoryUsedMB  uint64  `json:"memoryUsedMB,omitempty"`
	MemoryTotalMB uint64  `json:"memoryTotalMB,omitempty"`
}

// NewHandler answers the keep-alive ping at every path, plus /metrics and /status.
func NewHandler(started time.Time) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(collectStatus(started)); err != nil {
			log.Printf("Failed to encode status: %v", err)
		}
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, aliveMessage)
	})
	return mux
}

// collectStatus gathers host figures; anything gopsutil cannot read is left out.
func collectStatus(started time.Time) Status {
	st := Status{
		Uptime:     time.Since(started).Round(time.Second).String(),
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
	}
	if info, err := host.Info(); err == nil {
		st.Platform = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
		st.KernelVersion = info.KernelVersion
	}
	if n, err := cpu.Counts(true); err == nil {
		st.CPUCount = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		st.MemoryUsedPct = vm.UsedPercent
		st.MemoryUsedMB = vm.Used / 1024 / 1024
		st.MemoryTotalMB = vm.Total / 1024 / 1024
	}
	return st
}

// Serve listens on addr until ctx is cancelled, then shuts the server down.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Keep-alive server running on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("keep-alive server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("keep-alive shutdown: %w", err)
		}
		return nil
	}
}
