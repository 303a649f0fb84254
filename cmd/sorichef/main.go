// SoriChef — a Korean voice cooking assistant.
//
// Usage:
//
//	sorichef [-recipe file.json] [-voice] [-verbose] [-quiet]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yackhyun/sorichef/internal/dialogue"
	"github.com/yackhyun/sorichef/internal/display"
	"github.com/yackhyun/sorichef/internal/domain"
	"github.com/yackhyun/sorichef/internal/gpt"
	"github.com/yackhyun/sorichef/internal/logger"
	"github.com/yackhyun/sorichef/internal/recipe"
	"github.com/yackhyun/sorichef/internal/speech"
	"github.com/yackhyun/sorichef/internal/timer"
	"github.com/yackhyun/sorichef/internal/transcript"
)

// Env var names for the recipe service credentials.
const (
	envGPTEndpoint = "SORI_GPT_ENDPOINT"
	envGPTKey      = "SORI_GPT_KEY"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".sorichef-logs/sorichef.log", "file to write logs to (use \"stderr\" to log to console)")
	noSpeech := flag.Bool("no-speech", false, "disable text-to-speech even if Azure keys are set")
	voiceName := flag.String("voice-name", speech.DefaultVoice, "Azure TTS voice")
	voiceRate := flag.Float64("voice-rate", 1.0, "TTS speaking rate multiplier")
	voicePitch := flag.Float64("voice-pitch", 1.0, "TTS pitch multiplier")
	voice := flag.Bool("voice", false, "enable voice input via local Whisper STT")
	whisperBin := flag.String("whisper-bin", "whisper-cli", "path to the whisper-cpp CLI binary")
	whisperModel := flag.String("whisper-model", "bin/ggml-small.bin", "path to the Whisper GGML model file")
	chunkSecs := flag.Int("chunk-secs", 1, "seconds per voice recording chunk")
	sttDir := flag.String("stt-dir", ".sorichef-stt", "directory for temporary voice recording files")
	recipePath := flag.String("recipe", "", "JSON file with a recipe to start from")
	historyDir := flag.String("history-dir", ".sorichef-history", "directory where completed recipes are saved")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs like
	// the whisper transcriber) to the same output so it doesn't spam
	// the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Late-bound so the status callback can read them; all are set
	// before the UI starts ticking.
	var (
		sess  *dialogue.Session
		eng   *timer.Engine
		ctrl  *speech.Controller
		mouth *speech.Mouth
	)

	ui := display.NewUI(func() display.Status {
		var s display.Status
		if sess != nil {
			snap := sess.Snapshot()
			s.Phase = snap.Phase
			s.StepDone, s.StepTotal = sess.Progress()
			s.Processing = sess.Processing()
		}
		if eng != nil {
			s.Timer = eng.Snapshot()
		}
		if ctrl != nil {
			s.Listening = ctrl.Listening()
			s.WakeActive = ctrl.WakeActive()
		}
		if mouth != nil {
			s.Speaking = mouth.IsSpeaking()
		}
		return s
	})

	// Build the speaker. With Azure credentials the assistant talks;
	// without them every assistant line is display-only.
	var speaker domain.Speaker = speech.NewNoOpSpeaker(log)
	var chime timer.Chime = speech.SilentChime{}

	azureKey := os.Getenv(speech.EnvAzureSpeechKey)
	azureRegion := os.Getenv(speech.EnvAzureSpeechRegion)

	if azureKey != "" && azureRegion != "" && !*noSpeech {
		ttsClient := speech.NewAzureClient(azureKey, azureRegion, log,
			speech.WithVoice(*voiceName),
			speech.WithRate(*voiceRate),
			speech.WithPitch(*voicePitch),
		)
		player, err := speech.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, speech disabled: %v", err)
		} else {
			mouth = speech.NewMouth(ttsClient, player, log)
			speaker = mouth
			chime = speech.NewChime(player, log)
			log.Info("TTS enabled (voice=%s, region=%s)", *voiceName, azureRegion)
		}
	} else if !*noSpeech {
		log.Info("TTS disabled: set %s and %s env vars to enable", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion)
	}

	chat := transcript.New(speaker, transcript.WithOnChange(func(msg domain.ChatMessage) {
		ui.PrintMessage(msg)
	}))

	eng = timer.New(chime, func(total int) {
		chat.Append(domain.RoleAssistant, dialogue.LineTimerDone(total))
	}, log)

	// Recipe service.
	var svc domain.RecipeService
	gptEndpoint := os.Getenv(envGPTEndpoint)
	gptKey := os.Getenv(envGPTKey)
	if gptEndpoint != "" && gptKey != "" {
		svc = gpt.NewService(gpt.NewClient(gptEndpoint, gptKey, log), log)
		log.Info("recipe service enabled")
	} else {
		svc = disabledService{}
		log.Info("recipe service disabled: set %s and %s env vars to enable", envGPTEndpoint, envGPTKey)
	}

	sess = dialogue.New(svc, chat, eng, nil, log,
		dialogue.WithCompletionCallback(func(c domain.CompletedRecipe) error {
			return saveCompleted(*historyDir, c)
		}),
	)

	// Voice input.
	if *voice {
		if _, err := os.Stat(*whisperModel); err != nil {
			fmt.Fprintf(os.Stderr, "error: whisper model not found at %s\n", *whisperModel)
			os.Exit(1)
		}
		rec := speech.NewWhisperRecognizer(*whisperBin, *whisperModel, log,
			speech.WithChunkDuration(time.Duration(*chunkSecs)*time.Second),
			speech.WithTempDir(*sttDir),
		)
		ctrl = speech.NewController(rec,
			func(text string) {
				sess.HandleUtterance(ctx, text)
			},
			func(toast string) {
				ui.PrintUrgent(toast)
			},
			log,
			speech.WithOnWake(func() {
				// Stop talking the moment the user calls the assistant.
				if mouth != nil {
					mouth.Stop()
				}
			}),
		)
		log.Info("voice input enabled (bin=%s, model=%s, chunk=%ds)", *whisperBin, *whisperModel, *chunkSecs)
	}

	fmt.Println(display.RenderBanner())
	if *voice {
		fmt.Println(display.BannerStyle.Render("  음성 모드 ON — \"요리야\"라고 불러보세요. 명령을 입력할 수도 있습니다."))
	}
	fmt.Println(display.BannerStyle.Render("  '요리 완료'를 입력하면 기록이 저장됩니다. 종료: quit"))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		run(ctx, sess, ctrl, ui, speaker, recipePath, chat, log)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
	if ctrl != nil {
		ctrl.Stop()
	}
	eng.Cancel()
}

func run(ctx context.Context, sess *dialogue.Session, ctrl *speech.Controller, ui *display.UI, speaker domain.Speaker, recipePath *string, chat *transcript.Transcript, log *logger.Logger) {
	if *recipePath != "" {
		r, err := recipe.Load(*recipePath)
		if err != nil {
			log.Error("loading recipe %s: %v", *recipePath, err)
			chat.Append(domain.RoleAssistant, dialogue.LineRecipeLoadFailed())
		} else {
			sess.Bootstrap(r)
		}
	} else {
		ui.PrintHint("어떤 요리를 하고 싶은지 말해보세요. 예: \"김치찌개 해줘\"")
	}

	if ctrl != nil {
		ctrl.Start()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ui.QuitChan():
			return
		case input, ok := <-ui.InputChan():
			if !ok {
				return
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}

			switch {
			case input == "quit" || input == "exit" || input == "종료":
				return

			case input == "멈춰":
				speaker.Stop()

			case input == "요리 완료" || input == "요리완료":
				if sess.Snapshot().Phase != domain.PhaseFinished {
					ui.PrintHint("아직 요리가 끝나지 않았어요.")
					continue
				}
				if err := sess.Complete(ctx); err != nil {
					if errors.Is(err, domain.ErrNoRecipe) {
						ui.PrintHint("저장할 레시피가 없습니다.")
					} else {
						log.Error("completing recipe: %v", err)
					}
				}

			default:
				sess.HandleUtterance(ctx, input)
			}
		}
	}
}

// disabledService stands in when no GPT credentials are configured.
// Every call fails, which the session turns into a spoken apology.
type disabledService struct{}

func (disabledService) Generate(context.Context, string, domain.UserProfile) (*domain.Recipe, error) {
	return nil, errors.New("recipe service not configured")
}

func (disabledService) Followup(context.Context, *domain.Recipe, string, domain.UserProfile) (string, *domain.Recipe, error) {
	return "", nil, errors.New("recipe service not configured")
}

// saveCompleted writes the completed-recipe record as a JSON file.
func saveCompleted(dir string, c domain.CompletedRecipe) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	name := fmt.Sprintf("recipe-%s.json", time.Now().Format("20060102-150405"))
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}
