package logging

import (
	"log/slog"
	"net/http"
	_ "net/http/pprof" // Register pprof handlers
)

// PprofAddr is where the profiling server listens when [logs] pprof_enabled is set.
const PprofAddr = "localhost:6060"

func startPprof() {
	go func() {
		perfLog := ForComponent(CompPerf)
		perfLog.Info("pprof_server_start", slog.String("addr", PprofAddr))
		if err := http.ListenAndServe(PprofAddr, nil); err != nil {
			perfLog.Error("pprof_server_error", slog.String("error", err.Error()))
		}
	}()
}
