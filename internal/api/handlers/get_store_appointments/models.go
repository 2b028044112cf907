package get_store_appointments

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(storeID, userID int64, query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{
		UserID:  userID,
		StoreID: storeID,
	}

	if raw := query.Get("from"); raw != "" {
		from, err := handlers.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := handlers.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled: %w", err)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
