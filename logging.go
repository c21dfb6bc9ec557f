package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// AppLogger writes optional diagnostic streams (HTTP traffic, WebSocket
// messages, debug lines) to files. Everything is off by default; the normal
// stdlib log output is unaffected.
type AppLogger struct {
	outputDir      string
	logRequests    bool
	logWS          bool
	debug          bool
	requestLog     *os.File
	wsLog          *os.File
	mu             sync.Mutex
	requestCount   int
	wsMessageCount int
}

// Global application logger
var appLogger *AppLogger

// LogConfig holds diagnostic logging configuration
type LogConfig struct {
	OutputDir   string
	LogRequests bool
	LogWS       bool
	Debug       bool
}

// NewAppLogger creates a new application logger
func NewAppLogger(config LogConfig) (*AppLogger, error) {
	al := &AppLogger{
		outputDir:   config.OutputDir,
		logRequests: config.LogRequests,
		logWS:       config.LogWS,
		debug:       config.Debug,
	}

	if al.outputDir == "" {
		return al, nil // No file logging, debug still goes to stdout
	}

	var err error
	if al.logRequests {
		path := fmt.Sprintf("%s/requests.log", al.outputDir)
		al.requestLog, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open request log: %w", err)
		}
	}
	if al.logWS {
		path := fmt.Sprintf("%s/websocket.log", al.outputDir)
		al.wsLog, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open WebSocket log: %w", err)
		}
	}

	return al, nil
}

// NewAppLoggerFromEnv creates a logger from environment variables.
// Checks both LOG_* (server) and TEST_LOG_* (test) variants.
func NewAppLoggerFromEnv() (*AppLogger, error) {
	envBool := func(serverVar, testVar string) bool {
		return os.Getenv(serverVar) == "1" || os.Getenv(testVar) == "1"
	}
	envStr := func(serverVar, testVar string) string {
		if v := os.Getenv(serverVar); v != "" {
			return v
		}
		return os.Getenv(testVar)
	}

	config := LogConfig{
		OutputDir:   envStr("LOG_OUTPUT_DIR", "TEST_OUTPUT_DIR"),
		LogRequests: envBool("LOG_REQUESTS", "TEST_LOG_REQUESTS"),
		LogWS:       envBool("LOG_WS", "TEST_LOG_WS"),
		Debug:       envBool("LOG_DEBUG", "TEST_DEBUG"),
	}
	return NewAppLogger(config)
}

// InitAppLogger initializes the global application logger
func InitAppLogger(config LogConfig) error {
	var err error
	appLogger, err = NewAppLogger(config)
	return err
}

// Close closes all open log files
func (al *AppLogger) Close() {
	if al.requestLog != nil {
		al.requestLog.Close()
	}
	if al.wsLog != nil {
		al.wsLog.Close()
	}
}

// LogRequest logs an HTTP request and response
func (al *AppLogger) LogRequest(method, url string, reqBody []byte, status int, respBody []byte) {
	if !al.logRequests || al.requestLog == nil {
		return
	}

	al.mu.Lock()
	defer al.mu.Unlock()

	al.requestCount++
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(al.requestLog, "[%s] #%d %s %s -> %d\n", timestamp, al.requestCount, method, url, status)
	if len(reqBody) > 0 {
		fmt.Fprintf(al.requestLog, "  request:  %s\n", reqBody)
	}
	if len(respBody) > 0 {
		fmt.Fprintf(al.requestLog, "  response: %s\n", respBody)
	}
}

// LogWebSocket logs one WebSocket message for a room
func (al *AppLogger) LogWebSocket(direction, roomCode, message string) {
	if !al.logWS || al.wsLog == nil {
		return
	}

	al.mu.Lock()
	defer al.mu.Unlock()

	al.wsMessageCount++
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(al.wsLog, "[%s] #%d %s [room %s]: %s\n",
		timestamp, al.wsMessageCount, direction, roomCode, message)
}

func (al *AppLogger) Debug(context, format string, args ...any) {
	if !al.debug {
		return
	}
	log.Printf("[DEBUG] "+context+": "+format, args...)
}

// IsEnabled returns true if any diagnostic logging is enabled
func (al *AppLogger) IsEnabled() bool {
	return al.logRequests || al.logWS || al.debug
}

// LoggingHandler records request/response pairs around an inner handler.
// WebSocket upgrades need http.Hijacker, so they pass through untouched.
type LoggingHandler struct {
	Handler http.Handler
	Logger  *AppLogger
}

func (l *LoggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		l.Logger.LogRequest(r.Method, r.URL.String(), nil, 0, []byte("[WebSocket upgrade]"))
		l.Handler.ServeHTTP(w, r)
		return
	}

	var reqBody []byte
	if r.Body != nil {
		reqBody, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewBuffer(reqBody))
	}

	rec := httptest.NewRecorder()
	l.Handler.ServeHTTP(rec, r)

	for k, v := range rec.Header() {
		w.Header()[k] = v
	}
	w.WriteHeader(rec.Code)
	respBody := rec.Body.Bytes()
	w.Write(respBody)

	l.Logger.LogRequest(r.Method, r.URL.String(), reqBody, rec.Code, respBody)
}

// ============================================================================
// Global helper functions
// ============================================================================

// LogWSMessage logs a WebSocket message using the global logger
func LogWSMessage(direction, roomCode, message string) {
	if appLogger != nil {
		appLogger.LogWebSocket(direction, roomCode, message)
	}
}

// DebugLog logs a debug message using the global logger
func DebugLog(context, format string, args ...any) {
	if appLogger != nil {
		appLogger.Debug(context, format, args...)
	}
}

// CloseAppLogger closes the global application logger
func CloseAppLogger() {
	if appLogger != nil {
		appLogger.Close()
	}
}
