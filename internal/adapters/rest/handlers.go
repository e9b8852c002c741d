package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"equipment-search-service/internal/contextkeys"
	"equipment-search-service/internal/contracts"
	"equipment-search-service/internal/core/domain"
	"equipment-search-service/internal/core/port"
	"equipment-search-service/internal/core/port/usecases_port"
)

type EquipmentHandlers struct {
	searchUC   usecases_port.SearchEquipmentUseCasePort
	detailsUC  usecases_port.GetEquipmentDetailsUseCasePort
	estimateUC usecases_port.EstimateMarketValueUseCasePort
	similarUC  usecases_port.FindSimilarEquipmentUseCasePort
}

// NewEquipmentHandlers - конструктор для наших обработчиков.
func NewEquipmentHandlers(
	searchUC usecases_port.SearchEquipmentUseCasePort,
	detailsUC usecases_port.GetEquipmentDetailsUseCasePort,
	estimateUC usecases_port.EstimateMarketValueUseCasePort,
	similarUC usecases_port.FindSimilarEquipmentUseCasePort,
) *EquipmentHandlers {
	return &EquipmentHandlers{
		searchUC:   searchUC,
		detailsUC:  detailsUC,
		estimateUC: estimateUC,
		similarUC:  similarUC,
	}
}

// readAndValidateBody читает тело запроса и проверяет его по JSON-схеме
// контракта. Возвращает тело для последующей десериализации в DTO.
func readAndValidateBody(r *http.Request, requestType string) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) == 0 {
		return nil, io.EOF
	}
	if err := contracts.ValidateRequest(requestType, "1.0.0", body); err != nil {
		return nil, err
	}
	return body, nil
}

// HandleSearchEquipment - обработчик для POST /api/v1/equipment/search
func (h *EquipmentHandlers) HandleSearchEquipment(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSearchEquipment"})

	body, err := readAndValidateBody(r, "SearchEquipmentRequest")
	if err != nil {
		if err == io.EOF {
			logger.Warn("Request body is empty", nil)
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		logger.Warn("Request body failed contract validation", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	var reqDTO SearchEquipmentRequestDTO
	if err := json.Unmarshal(body, &reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	criteria := domain.SearchCriteria{
		Query:    reqDTO.Query,
		Category: reqDTO.Category,
		Make:     reqDTO.Make,
		Model:    reqDTO.Model,
		Year:     reqDTO.Year,
		MinPrice: reqDTO.MinPrice,
		MaxPrice: reqDTO.MaxPrice,
		Sources:  reqDTO.Source,
	}

	// Инвариант запроса проверяем до вызова use case, чтобы отдать
	// клиенту осмысленное сообщение.
	if !criteria.HasSearchTerms() {
		logger.Warn("Search request without any search terms", nil)
		WriteJSONError(w, http.StatusBadRequest, "At least one search parameter is required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"query":    reqDTO.Query,
		"make":     reqDTO.Make,
		"model":    reqDTO.Model,
		"category": reqDTO.Category,
	})
	handlerLogger.Info("Processing equipment search request", nil)

	listings, err := h.searchUC.Execute(r.Context(), criteria)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSearchQuery) {
			WriteJSONError(w, http.StatusBadRequest, "At least one search parameter is required")
			return
		}
		// Сюда попадают только ошибки самой агрегации: источники по
		// контракту не ошибаются. Причину не раскрываем, только логируем.
		handlerLogger.Error("Search use case failed with an unexpected error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	handlerLogger.Info("Equipment search completed", port.Fields{"listings_count": len(listings)})
	RespondWithJSON(w, http.StatusOK, listings)
}

// HandleGetEquipmentDetails - обработчик для POST /api/v1/equipment/details
func (h *EquipmentHandlers) HandleGetEquipmentDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleGetEquipmentDetails"})

	body, err := readAndValidateBody(r, "EquipmentDetailsRequest")
	if err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	var reqDTO EquipmentDetailsRequestDTO
	if err := json.Unmarshal(body, &reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if reqDTO.SourceID == "" || reqDTO.EquipmentID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Source ID and equipment ID are required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"source_id":    reqDTO.SourceID,
		"equipment_id": reqDTO.EquipmentID,
	})
	handlerLogger.Info("Processing equipment details request", nil)

	details, err := h.detailsUC.Execute(r.Context(), reqDTO.SourceID, reqDTO.EquipmentID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSource) {
			handlerLogger.Warn("Details requested for unknown source", nil)
			WriteJSONError(w, http.StatusBadRequest, "Invalid source ID")
			return
		}
		handlerLogger.Error("Details use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, details)
}

// HandleEstimateMarketValue - обработчик для POST /api/v1/equipment/market-value
func (h *EquipmentHandlers) HandleEstimateMarketValue(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleEstimateMarketValue"})

	body, err := readAndValidateBody(r, "MarketValueRequest")
	if err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	var reqDTO MarketValueRequestDTO
	if err := json.Unmarshal(body, &reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if reqDTO.Make == "" || reqDTO.Model == "" {
		WriteJSONError(w, http.StatusBadRequest, "Make and model are required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"make":  reqDTO.Make,
		"model": reqDTO.Model,
	})
	handlerLogger.Info("Processing market value estimate request", nil)

	estimate, err := h.estimateUC.Execute(r.Context(), reqDTO.Make, reqDTO.Model, reqDTO.Year, reqDTO.Condition)
	if err != nil {
		handlerLogger.Error("Estimate use case failed with an unexpected error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, estimate)
}

// HandleFindSimilarEquipment - обработчик для POST /api/v1/equipment/similar
func (h *EquipmentHandlers) HandleFindSimilarEquipment(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleFindSimilarEquipment"})

	body, err := readAndValidateBody(r, "SimilarEquipmentRequest")
	if err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	var reqDTO SimilarEquipmentRequestDTO
	if err := json.Unmarshal(body, &reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if reqDTO.SourceID == "" || reqDTO.EquipmentID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Source ID and equipment ID are required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"source_id":    reqDTO.SourceID,
		"equipment_id": reqDTO.EquipmentID,
	})
	handlerLogger.Info("Processing similar equipment request", nil)

	similar, err := h.similarUC.Execute(r.Context(), reqDTO.SourceID, reqDTO.EquipmentID, reqDTO.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSource) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid source ID")
			return
		}
		if errors.Is(err, domain.ErrDetailsUnavailable) {
			handlerLogger.Error("Failed to get source equipment details", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to get equipment details")
			return
		}
		handlerLogger.Error("Similar equipment use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to find similar equipment")
		return
	}

	RespondWithJSON(w, http.StatusOK, similar)
}
