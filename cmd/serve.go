package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/convert"
	"github.com/jsphweid/chordex/db"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/progression"
)

const maxUploadBytes = 32 << 20

var serveWithStore bool

func init() {
	serveCmd.Flags().BoolVar(&serveWithStore, "dynamodb", false, "Serve stored progressions from DynamoDB")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the conversion API",
	RunE: func(cmd *cobra.Command, args []string) error {
		var store *db.Store
		if serveWithStore {
			s, err := db.NewFromConfig(cfg.DynamoDB)
			if err != nil {
				return err
			}
			store = s
		}
		return serve(cmd.Context(), store)
	},
}

type server struct {
	opts  convert.Options
	store *db.Store
}

func NewRouter(opts convert.Options, store *db.Store) http.Handler {
	s := &server{opts: opts, store: store}
	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestID)
	router.HandleFunc("/health", handleHealth).Methods("GET")
	router.HandleFunc("/convert", s.handleConvert).Methods("POST")
	router.HandleFunc("/classify", s.handleClassify).Methods("POST")
	if store != nil {
		router.HandleFunc("/progressions/{key}", s.handleGetProgression).Methods("GET")
	}
	return cors.Default().Handler(router)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request", "id", id, "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func uintParam(r *http.Request, name string) (uint64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseUint(v, 10, 32)
}

func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	opts := s.opts
	opts.Progress = nil
	ticksPerBar, err := uintParam(r, "ticksPerBar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ticksPerBar must be a positive integer")
		return
	}
	barsPerBeat, err := uintParam(r, "barsPerBeat")
	if err != nil {
		writeError(w, http.StatusBadRequest, "barsPerBeat must be a positive integer")
		return
	}
	if ticksPerBar > 0 {
		opts.TicksPerBar = uint32(ticksPerBar)
	}
	if barsPerBeat > 0 {
		opts.BarsPerBeat = int(barsPerBeat)
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "could not read body: "+err.Error())
		return
	}

	src := convert.ReaderSource{ID: w.Header().Get("X-Request-Id"), Data: body}
	p, _, err := convert.ConvertSource(src, opts)
	var readErr *convert.SourceReadError
	switch {
	case errors.As(err, &readErr):
		writeError(w, http.StatusBadRequest, readErr.Err.Error())
		return
	case errors.Is(err, convert.ErrEmptyResult):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, progression.ToDocument(progression.Merge(p)))
}

func (s *server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var input model.ClassifyRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "could not unmarshal request body: "+err.Error())
		return
	}
	if len(input.Notes) == 0 {
		writeError(w, http.StatusBadRequest, "notes must not be empty")
		return
	}

	notes := make([]uint8, 0, len(input.Notes))
	for _, n := range input.Notes {
		if n < 0 || n > 127 {
			writeError(w, http.StatusBadRequest, "notes must be in 0-127")
			return
		}
		notes = append(notes, uint8(n))
	}

	var sym model.ChordSymbol
	var err error
	if input.Bass != nil {
		if *input.Bass < 0 || *input.Bass > 127 {
			writeError(w, http.StatusBadRequest, "bass must be in 0-127")
			return
		}
		sym, err = chord.ClassifyWithBass(notes, uint8(*input.Bass))
	} else {
		sym, err = chord.Classify(notes)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Debug("classified", "key", chord.CreateChordKey(notes), "symbol", sym.Symbol())

	writeJSON(w, http.StatusOK, model.ClassifyResponse{
		DocChord: progression.ToDocChord(sym),
		Name:     sym.Quality.Name,
		Inverted: sym.Inverted(),
	})
}

func (s *server) handleGetProgression(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	doc, err := s.store.Get(key)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func serve(ctx context.Context, store *db.Store) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: NewRouter(convertOptions(nil), store),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
