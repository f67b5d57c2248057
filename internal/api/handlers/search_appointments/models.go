package search_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	"github.com/akaisui/car-repair-backend-sub000/internal/service/appointments/models"
)

// toServiceRequest собирает модель сервиса из query параметров
func toServiceRequest(query url.Values) (*models.SearchRequest, error) {
	req := &models.SearchRequest{}

	var err error
	if req.CustomerID, err = parseInt64Param(query, "customerId"); err != nil {
		return nil, err
	}
	if req.VehicleID, err = parseInt64Param(query, "vehicleId"); err != nil {
		return nil, err
	}
	if req.ServiceID, err = parseInt64Param(query, "serviceId"); err != nil {
		return nil, err
	}
	if req.DateFrom, err = parseDateParam(query, "dateFrom"); err != nil {
		return nil, err
	}
	if req.DateTo, err = parseDateParam(query, "dateTo"); err != nil {
		return nil, err
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("search"); v != "" {
		req.Search = &v
	}
	if v := query.Get("orderBy"); v != "" {
		req.OrderBy = &v
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = &limit
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Offset = &offset
	}

	return req, nil
}

func parseInt64Param(query url.Values, name string) (*int64, error) {
	v := query.Get(name)
	if v == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseDateParam(query url.Values, name string) (*time.Time, error) {
	v := query.Get(name)
	if v == "" {
		return nil, nil
	}

	parsed, err := time.Parse(domain.DateFormat, v)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
