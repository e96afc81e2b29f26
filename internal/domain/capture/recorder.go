package capture

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"
)

// RecordingSession es una grabación en curso. Los chunks se acumulan en memoria.
type RecordingSession struct {
	mu        sync.Mutex
	mime      string
	buf       bytes.Buffer
	startedAt time.Time
	closed    bool
}

func (rs *RecordingSession) Write(p []byte) (int, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.closed {
		return 0, fmt.Errorf("%w: recording already stopped", ErrInvalidMedia)
	}
	if rs.buf.Len()+len(p) > MaxMediaBytes {
		return 0, fmt.Errorf("%w: recording exceeds %d bytes", ErrInvalidMedia, MaxMediaBytes)
	}
	return rs.buf.Write(p)
}

func (rs *RecordingSession) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.buf.Len()
}

func (rs *RecordingSession) StartedAt() time.Time { return rs.startedAt }

// Recorder admite una sola grabación activa a la vez.
type Recorder struct {
	adapter *Adapter
	now     func() time.Time

	mu     sync.Mutex
	active *RecordingSession
}

func (a *Adapter) NewRecorder() *Recorder {
	return &Recorder{adapter: a, now: time.Now}
}

// Start pide el permiso de micrófono y abre una grabación.
// Si falla, el estado del recorder no cambia.
func (r *Recorder) Start(ctx context.Context, userID, mime string) (*RecordingSession, error) {
	r.mu.Lock()
	busy := r.active != nil
	r.mu.Unlock()
	if busy {
		return nil, ErrRecordingAlreadyActive
	}

	if err := r.adapter.checkMicrophone(ctx, userID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// otro Start pudo ganar mientras consultábamos el permiso
	if r.active != nil {
		return nil, ErrRecordingAlreadyActive
	}
	rs := &RecordingSession{mime: mime, startedAt: r.now()}
	r.active = rs
	return rs, nil
}

// Active devuelve la grabación en curso o nil.
func (r *Recorder) Active() *RecordingSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Stop cierra rs y devuelve el audio capturado. La grabación queda liberada
// aunque el resultado sea inválido (p.ej. cero bytes).
func (r *Recorder) Stop(rs *RecordingSession) (CapturedMedia, error) {
	r.mu.Lock()
	if rs == nil || r.active != rs {
		r.mu.Unlock()
		return CapturedMedia{}, fmt.Errorf("%w: no active recording", ErrInvalidMedia)
	}
	r.active = nil
	r.mu.Unlock()

	rs.mu.Lock()
	rs.closed = true
	data := append([]byte(nil), rs.buf.Bytes()...)
	declared := rs.mime
	rs.buf.Reset()
	rs.mu.Unlock()

	return r.adapter.CaptureAudioFile(FileHandle{ContentType: declared, Data: data})
}

// Abort descarta la grabación activa, si hay.
func (r *Recorder) Abort() {
	r.mu.Lock()
	rs := r.active
	r.active = nil
	r.mu.Unlock()

	if rs != nil {
		rs.mu.Lock()
		rs.closed = true
		rs.buf.Reset()
		rs.mu.Unlock()
	}
}
