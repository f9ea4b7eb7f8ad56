package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger define a interface para logging estruturado.
// Handler, Service e infraestrutura dependem apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error)
	// With retorna um Logger que anexa os campos a toda entrada (ex: request_id).
	With(fields map[string]interface{}) Logger
}

// LogEntry define a estrutura de um log para garantir o formato JSON.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
	"fatal": 4,
}

// JSONLogger escreve uma linha JSON por entrada.
type JSONLogger struct {
	level  int
	out    io.Writer
	mu     *sync.Mutex
	fields map[string]interface{}
	exit   func(int)
}

// NewLogger cria um Logger que escreve em stdout no nível informado.
func NewLogger(level string) Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter permite redirecionar a saída (usado nos testes).
func NewWithWriter(level string, out io.Writer) Logger {
	lvl, ok := levels[strings.ToLower(level)]
	if !ok {
		lvl = levels["info"]
	}
	return &JSONLogger{level: lvl, out: out, mu: &sync.Mutex{}, exit: os.Exit}
}

// Nop descarta tudo.
func Nop() Logger {
	return NewWithWriter("fatal", io.Discard)
}

func (l *JSONLogger) logf(level, msg string, fields map[string]interface{}, err error) {
	if levels[level] < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     strings.ToUpper(level),
		Message:   msg,
		Fields:    merge(l.fields, fields),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	line, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		// campos não serializáveis: registra só a mensagem
		entry.Fields = nil
		line, _ = json.Marshal(entry)
	}

	l.mu.Lock()
	l.out.Write(append(line, '\n'))
	l.mu.Unlock()
}

func merge(base, extra map[string]interface{}) map[string]interface{} {
	if len(base) == 0 {
		return extra
	}
	out := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func (l *JSONLogger) Debug(msg string, fields map[string]interface{}) {
	l.logf("debug", msg, fields, nil)
}

func (l *JSONLogger) Info(msg string, fields map[string]interface{}) {
	l.logf("info", msg, fields, nil)
}

func (l *JSONLogger) Warn(msg string, fields map[string]interface{}) {
	l.logf("warn", msg, fields, nil)
}

func (l *JSONLogger) Error(msg string, err error, fields ...map[string]interface{}) {
	var f map[string]interface{}
	for _, extra := range fields {
		f = merge(f, extra)
	}
	l.logf("error", msg, f, err)
}

// Fatal registra a entrada e encerra o processo com status 1.
func (l *JSONLogger) Fatal(msg string, err error) {
	l.logf("fatal", msg, nil, err)
	l.exit(1)
}

func (l *JSONLogger) With(fields map[string]interface{}) Logger {
	return &JSONLogger{
		level:  l.level,
		out:    l.out,
		mu:     l.mu,
		fields: merge(l.fields, fields),
		exit:   l.exit,
	}
}
