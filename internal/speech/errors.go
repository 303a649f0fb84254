package speech

// ErrorCode identifies a recognition failure category as reported by
// the speech engine.
type ErrorCode string

const (
	// CodeAborted is raised when a session is stopped on purpose.
	// Never surfaced to the user.
	CodeAborted ErrorCode = "aborted"
	// CodeNotAllowed means microphone permission was denied.
	CodeNotAllowed ErrorCode = "not-allowed"
	// CodeServiceNotAllowed means the recognition service refused us.
	CodeServiceNotAllowed ErrorCode = "service-not-allowed"
	// CodeAudioCapture means no usable microphone was found.
	CodeAudioCapture ErrorCode = "audio-capture"
	// CodeNetwork means the recognition backend was unreachable.
	CodeNetwork ErrorCode = "network"
	// CodeNoSpeech means a session ended without hearing anything.
	CodeNoSpeech ErrorCode = "no-speech"
)

// Fatal reports whether the error should shut voice input down until
// the user re-enables it by hand.
func (c ErrorCode) Fatal() bool {
	switch c {
	case CodeNotAllowed, CodeServiceNotAllowed, CodeAudioCapture, CodeNetwork:
		return true
	default:
		return false
	}
}

// FatalMessage returns the user-facing explanation for a fatal code.
func FatalMessage(code ErrorCode) string {
	switch code {
	case CodeNotAllowed, CodeServiceNotAllowed:
		return "마이크 권한이 차단되어 음성 인식을 사용할 수 없어요. 권한을 허용해 주세요."
	case CodeAudioCapture:
		return "마이크를 찾을 수 없어요. 연결 상태를 확인해 주세요."
	case CodeNetwork:
		return "네트워크 문제로 음성 인식이 중단되었어요. 연결을 확인해 주세요."
	default:
		return "음성 인식에 문제가 생겼어요. 다시 시도해 주세요."
	}
}
