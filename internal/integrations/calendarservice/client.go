package calendarservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Client клиент для работы с CalendarService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CalendarService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusyTimes получает занятые интервалы владельца в [start, end)
func (c *Client) GetBusyTimes(ctx context.Context, ownerID int64, start, end time.Time) ([]domain.CalendarBusySlot, error) {
	query := url.Values{}
	query.Set("start", start.UTC().Format(time.RFC3339))
	query.Set("end", end.UTC().Format(time.RFC3339))
	endpoint := fmt.Sprintf("%s/internal/owners/%d/busy-times?%s", c.baseURL, ownerID, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid owner ID or range", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrOwnerNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var payload BusyTimesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	slots := make([]domain.CalendarBusySlot, 0, len(payload.BusyTimes))
	for _, b := range payload.BusyTimes {
		slots = append(slots, domain.CalendarBusySlot{
			Start:  b.Start.UTC(),
			End:    b.End.UTC(),
			Source: b.Source,
		})
	}

	return slots, nil
}

// GetBusyTimesWithGracefulDegradation получает занятость календаря с graceful degradation
// Отсутствие подключённых календарей - не ошибка: возвращается пустой список.
// При недоступности CalendarService возвращает ErrServiceDegraded, вызывающий считает занятость пустой.
func (c *Client) GetBusyTimesWithGracefulDegradation(ctx context.Context, ownerID int64, start, end time.Time) ([]domain.CalendarBusySlot, error) {
	slots, err := c.GetBusyTimes(ctx, ownerID, start, end)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			c.log.Info("No connected calendars for owner_id=%d", ownerID)
			return []domain.CalendarBusySlot{}, nil
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation
		c.log.Error("CalendarService unavailable, applying graceful degradation for owner_id=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: owner_id=%d, error=%v", ErrServiceDegraded, ownerID, err)
	}

	c.log.Info("Fetched %d busy intervals for owner_id=%d", len(slots), ownerID)
	return slots, nil
}
