// Package speech provides the wake word and command recognition
// cascade plus text-to-speech output.
package speech

// RecognizerConfig describes how a recognition session should behave.
type RecognizerConfig struct {
	Lang           string
	Continuous     bool
	InterimResults bool
}

// Result is one piece of transcribed speech. Interim results carry
// Final=false and may be revised by later results.
type Result struct {
	Text  string
	Final bool
}

// Handlers receive session lifecycle events. Any handler may be nil.
type Handlers struct {
	OnStart  func()
	OnResult func(Result)
	OnError  func(ErrorCode)
	OnEnd    func()
}

// Recognizer creates recognition sessions. The whisper-backed
// implementation is used in production; tests script their own.
type Recognizer interface {
	NewSession(cfg RecognizerConfig, h Handlers) (Session, error)
}

// Session is a live recognition capture. Stop aborts it; the session
// fires OnEnd exactly once, whether it ends naturally or is stopped.
type Session interface {
	Stop()
}
