package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "VoiceChatRelay/docs"
	"VoiceChatRelay/internal/config"
	"VoiceChatRelay/internal/handler"
	"VoiceChatRelay/internal/imagegen"
	"VoiceChatRelay/internal/llm"
	"VoiceChatRelay/internal/logger"
	"VoiceChatRelay/internal/models"
	"VoiceChatRelay/internal/relay"
	"VoiceChatRelay/internal/storage"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title        Voice Chat Relay API
// @version      1.0
// @description  Gemini Live 음성 대화 릴레이 서버 API
// @host         localhost:8000
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Fatal] %v", err)
	}

	sugar, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("[Fatal] failed to build logger: %v", err)
	}
	defer sugar.Sync()

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalf("main(): %v", err)
	}
}

func run(cfg *config.AppConfig, sugar *zap.SugaredLogger) error {
	// SIGINT/SIGTERM cancel every request context, which closes live sessions
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	genaiClient, err := llm.NewGenAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return err
	}
	liveDialer := llm.NewLiveDialer(genaiClient, cfg.GeminiLiveModel, sugar)
	dial := func(ctx context.Context, sc models.SessionConfig) (relay.Upstream, error) {
		stream, err := liveDialer.Dial(ctx, sc)
		if err != nil {
			return nil, err
		}
		return stream, nil
	}

	images := imagegen.NewClient(cfg.KieBaseURL, cfg.KieAPIKey, cfg.KieImageModel, sugar)
	profiles := storage.NewProfileStore(cfg.ChatsFile, images, sugar)
	if err := profiles.Load(); err != nil {
		// the store keeps serving the default profile
		sugar.Errorf("run(): failed to load %s, starting with default chat only: %v", cfg.ChatsFile, err)
	}

	db, err := storage.OpenDatabase(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []handler.Option{
		handler.WithSessionLog(storage.NewSessionStore(db)),
		handler.WithTranslator(llm.NewTranslator(genaiClient, cfg.GeminiTextModel)),
	}
	if tts, err := llm.NewTTSClient(ctx, cfg.GoogleCredentialsFile, sugar); err != nil {
		sugar.Warnf("run(): voice preview disabled: %v", err)
	} else {
		defer tts.Close()
		opts = append(opts, handler.WithVoicePreviewer(tts))
	}
	if stt, err := llm.NewTranscriber(ctx, cfg.GoogleCredentialsFile, sugar); err != nil {
		sugar.Warnf("run(): transcription disabled: %v", err)
	} else {
		defer stt.Close()
		opts = append(opts, handler.WithTranscriber(stt))
	}

	h := handler.New(profiles, dial, sugar, opts...)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.NewRouter(h, cfg.CreateChatRatePerMinute),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		sugar.Infof("run(): listening on %s", cfg.Addr())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	sugar.Infof("run(): shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)

	// Shutdown does not track hijacked websocket conns. Wait for the sessions
	// so the deferred database and speech client closes run after them.
	if werr := h.Wait(shutdownCtx); werr != nil {
		sugar.Warnf("run(): relay sessions still open after %s: %v", shutdownTimeout, werr)
	}
	return err
}
