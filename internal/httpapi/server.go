package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carprice/internal/predictor"
	"carprice/pkg/types"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Bem-vindo à API de Previsão de Preços de Carros! Envie um POST para /prever_preco_carro."

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(marca, modelo string, ano, quilometragem int) (float64, error)
	Ready() bool
	Status() types.StatusResponse
}

// validate checks request schemas; field names in messages follow the json tags.
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: orDefault(corsAllowedOrigins, []string{"*"}),
			AllowedMethods: orDefault(corsAllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			AllowedHeaders: orDefault(corsAllowedHeaders, []string{"Content-Type", "X-Request-Id", "X-Log-Level"}),
			MaxAge:         300,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", handleWelcome)
	r.Post("/prever_preco_carro", handlePredict(svc))

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("model not loaded"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleWelcome godoc
// @Summary      Welcome message
// @Tags         meta
// @Produce      json
// @Success      200  {object}  types.WelcomeResponse
// @Router       / [get]
func handleWelcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.WelcomeResponse{Message: WelcomeMessage})
}

// handlePredict godoc
// @Summary      Estimate a car's price
// @Description  Encodes the car the same way the model was trained and returns the regression estimate.
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        body  body      types.PredictionRequest  true  "Car description"
// @Success      200   {object}  types.PredictionResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      503   {object}  types.ErrorResponse
// @Router       /prever_preco_carro [post]
func handlePredict(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lvl := requestLogLevel(r)

		req, err := decodePrediction(w, r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, msgBadRequest+err.Error())
			logPrediction(r, lvl, http.StatusBadRequest, start, err)
			return
		}
		if lvl >= LevelDebug {
			zlog.Debug().
				Str("marca", *req.Marca).Str("modelo", *req.Modelo).
				Int("ano", *req.Ano).Int("quilometragem", *req.Quilometragem).
				Msg("predict start")
		}

		price, err := svc.Predict(*req.Marca, *req.Modelo, *req.Ano, *req.Quilometragem)
		if err != nil {
			if predictor.IsModelUnavailable(err) {
				writeJSONError(w, http.StatusServiceUnavailable, err.Error())
				logPrediction(r, lvl, http.StatusServiceUnavailable, start, err)
				return
			}
			writeJSONError(w, http.StatusBadRequest, msgBadCar+err.Error())
			logPrediction(r, lvl, http.StatusBadRequest, start, err)
			return
		}
		writeJSON(w, http.StatusOK, types.PredictionResponse{PrecoEstimado: price})
		logPrediction(r, lvl, http.StatusOK, start, nil)
	}
}

// decodePrediction reads and validates a PredictionRequest body.
func decodePrediction(w http.ResponseWriter, r *http.Request) (types.PredictionRequest, error) {
	var req types.PredictionRequest
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return req, errors.New("Content-Type must be application/json")
		}
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &typeErr):
			return req, fmt.Errorf("campo %q deve ser do tipo %s", typeErr.Field, typeErr.Type)
		case errors.As(err, &maxErr):
			return req, fmt.Errorf("corpo da requisição excede %d bytes", maxErr.Limit)
		default:
			return req, fmt.Errorf("JSON inválido: %w", err)
		}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return req, errors.New("JSON inválido: dados após o objeto")
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return req, fmt.Errorf("campos obrigatórios ausentes: %s", strings.Join(missing, ", "))
		}
		return req, err
	}
	return req, nil
}
