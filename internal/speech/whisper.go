package speech

import (
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	audiotranscriber "github.com/sklyt/whisper/pkg"

	"github.com/yackhyun/sorichef/internal/logger"
)

// envAnnotation matches whisper environmental annotations like
// "(keyboard clicking)" or "[music]".
var envAnnotation = regexp.MustCompile(`[\(\[][a-zA-Z][a-zA-Z\s]*[\)\]]`)

// WhisperOption configures the whisper recognizer.
type WhisperOption func(*WhisperRecognizer)

// WithChunkDuration sets how long each capture chunk lasts.
func WithChunkDuration(d time.Duration) WhisperOption {
	return func(w *WhisperRecognizer) { w.chunkDuration = d }
}

// WithTempDir sets the directory for temporary WAV files.
func WithTempDir(dir string) WhisperOption {
	return func(w *WhisperRecognizer) { w.tempDir = dir }
}

// Compile-time interface check.
var _ Recognizer = (*WhisperRecognizer)(nil)

// WhisperRecognizer captures microphone audio in short chunks and
// transcribes each with a local whisper model. Every transcribed chunk
// is delivered as a final result; the controller's silence window
// decides when the utterance is over.
type WhisperRecognizer struct {
	whisperBin    string
	modelPath     string
	tempDir       string
	chunkDuration time.Duration
	log           *logger.Logger
}

// NewWhisperRecognizer creates a recognizer using the given
// whisper-cli binary and GGML model.
func NewWhisperRecognizer(whisperBin, modelPath string, log *logger.Logger, opts ...WhisperOption) *WhisperRecognizer {
	w := &WhisperRecognizer{
		whisperBin:    whisperBin,
		modelPath:     modelPath,
		tempDir:       ".sorichef-stt",
		chunkDuration: 1 * time.Second,
		log:           log,
	}
	for _, opt := range opts {
		opt(w)
	}

	if _, err := exec.LookPath(w.whisperBin); err != nil {
		log.Error("whisper binary %q not found in PATH: %v", w.whisperBin, err)
	}

	return w
}

// NewSession starts a capture loop in the background.
func (w *WhisperRecognizer) NewSession(_ RecognizerConfig, h Handlers) (Session, error) {
	s := &whisperSession{stop: make(chan struct{})}
	go w.run(s, h)
	return s, nil
}

type whisperSession struct {
	stop chan struct{}
	once sync.Once
}

func (s *whisperSession) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (w *WhisperRecognizer) run(s *whisperSession, h Handlers) {
	if h.OnStart != nil {
		h.OnStart()
	}
	defer func() {
		if h.OnEnd != nil {
			h.OnEnd()
		}
	}()

	for {
		select {
		case <-s.stop:
			return
		default:
		}

		text, err := w.recordChunk(s.stop)
		if err != nil {
			w.log.Error("capture failed: %v", err)
			if h.OnError != nil {
				h.OnError(CodeAudioCapture)
			}
			return
		}

		text = cleanTranscription(text)
		if text == "" {
			continue
		}

		w.log.Debug("heard %q", text)
		if h.OnResult != nil {
			h.OnResult(Result{Text: text, Final: true})
		}
	}
}

// recordChunk does one record-then-transcribe cycle.
func (w *WhisperRecognizer) recordChunk(stop <-chan struct{}) (string, error) {
	var result string
	var wg sync.WaitGroup
	wg.Add(1)

	callback := func(text string) {
		result = text
		wg.Done()
	}

	verbose := w.log.GetLevel() >= logger.LevelVerbose
	t, err := audiotranscriber.NewTranscriber(
		w.whisperBin,
		w.modelPath,
		w.tempDir,
		"wav",
		callback,
		verbose,
	)
	if err != nil {
		return "", err
	}

	if err := t.Start(); err != nil {
		return "", err
	}

	select {
	case <-time.After(w.chunkDuration):
	case <-stop:
	}

	t.Stop()
	wg.Wait()

	return result, nil
}

// cleanTranscription strips whisper artifacts: blank-audio markers,
// environmental annotations, timestamp prefixes, and the stock
// hallucinations the model emits on silence.
func cleanTranscription(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)

	for _, junk := range []string{"[BLANK_AUDIO]", "[BLANK AUDIO]", "(silence)", "[silence]", "[Music]", "(music)"} {
		s = strings.ReplaceAll(s, junk, "")
	}
	s = envAnnotation.ReplaceAllString(s, "")

	// Timestamp prefixes like "[00:00:00.000 --> 00:00:05.000]".
	if strings.HasPrefix(s, "[") {
		if idx := strings.Index(s, "]"); idx != -1 && idx < 40 {
			s = s[idx+1:]
		}
	}

	s = strings.Join(strings.Fields(s), " ")

	// Whisper hallucinates these on silent Korean audio.
	hallucinations := []string{
		"...",
		"시청해주셔서 감사합니다.",
		"시청해 주셔서 감사합니다.",
		"구독과 좋아요 부탁드립니다.",
		"감사합니다.",
		"MBC 뉴스 이덕영입니다.",
		"Thank you.",
	}
	for _, h := range hallucinations {
		if s == h {
			return ""
		}
	}

	return s
}
