package types

// PredictionRequest is the body of POST /prever_preco_carro.
// Fields are pointers so that a missing field can be told apart from a zero value.
type PredictionRequest struct {
	// Car brand.
	// example: Ford
	Marca *string `json:"marca" validate:"required" example:"Ford"`
	// Car model.
	// example: Ka
	Modelo *string `json:"modelo" validate:"required" example:"Ka"`
	// Manufacturing year.
	// example: 2018
	Ano *int `json:"ano" validate:"required" example:"2018"`
	// Mileage in kilometres.
	// example: 50000
	Quilometragem *int `json:"quilometragem" validate:"required" example:"50000"`
}

// PredictionResponse is returned by POST /prever_preco_carro on success.
type PredictionResponse struct {
	// Estimated price.
	// example: 31250.5
	PrecoEstimado float64 `json:"preco_estimado" example:"31250.5"`
}

// WelcomeResponse is returned by GET /.
type WelcomeResponse struct {
	Message string `json:"message" example:"Bem-vindo à API de Previsão de Preços de Carros!"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error detail, including the underlying cause when there is one.
	// example: Modelo não foi carregado. Execute o script de treinamento.
	Detail string `json:"detail" example:"Modelo não foi carregado. Execute o script de treinamento."`
	// HTTP status code.
	// example: 503
	Code int `json:"code" example:"503"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Predictor state: ready or unavailable.
	// example: ready
	State string `json:"state" example:"ready"`
	// Identifier of the loaded artifact.
	// example: 3f7c1f0e-6b0e-4a53-8f43-3d1c7f2a9b10
	ModelID string `json:"model_id,omitempty" example:"3f7c1f0e-6b0e-4a53-8f43-3d1c7f2a9b10"`
	// Path the artifact was loaded from.
	ModelPath string `json:"model_path,omitempty"`
	// Training time in unix seconds.
	// example: 1700000000
	TrainedAt int64 `json:"trained_at_unix,omitempty" example:"1700000000"`
	// Number of training rows.
	// example: 120
	Rows int `json:"rows,omitempty" example:"120"`
	// Ordered feature columns the model expects.
	Columns []string `json:"columns,omitempty"`
	// In-sample coefficient of determination.
	// example: 0.93
	R2 float64 `json:"r2,omitempty" example:"0.93"`
	// In-sample root mean squared error.
	// example: 1520.7
	RMSE float64 `json:"rmse,omitempty" example:"1520.7"`
	// Load error, if the artifact could not be loaded.
	Error string `json:"error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// TrainingRun is a single entry of the training history.
type TrainingRun struct {
	ID           int64   `json:"id"`
	ModelID      string  `json:"model_id"`
	DataPath     string  `json:"data_path"`
	ArtifactPath string  `json:"artifact_path"`
	Rows         int     `json:"rows"`
	R2           float64 `json:"r2"`
	RMSE         float64 `json:"rmse"`
	TrainedAt    int64   `json:"trained_at_unix"`
}
