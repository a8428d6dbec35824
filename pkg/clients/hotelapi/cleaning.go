package hotelapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

func (c *Client) ListCleaningSchedules(ctx context.Context) ([]model.CleaningSchedule, error) {
	var schedules []model.CleaningSchedule
	if err := c.get(ctx, "/cleaning-schedules/", nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *Client) GetCleaningSchedule(ctx context.Context, id int) (*model.CleaningScheduleWithDetails, error) {
	var schedule model.CleaningScheduleWithDetails
	if err := c.get(ctx, fmt.Sprintf("/cleaning-schedules/%d", id), nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (c *Client) CreateCleaningSchedule(ctx context.Context, input model.CleaningScheduleInput) (*model.CleaningSchedule, error) {
	var schedule model.CleaningSchedule
	if err := c.post(ctx, "/cleaning-schedules/", input, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (c *Client) UpdateCleaningSchedule(ctx context.Context, id int, input model.CleaningScheduleInput) (*model.CleaningSchedule, error) {
	var schedule model.CleaningSchedule
	if err := c.put(ctx, fmt.Sprintf("/cleaning-schedules/%d", id), nil, input, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (c *Client) DeleteCleaningSchedule(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/cleaning-schedules/%d", id))
}

func (c *Client) ListEmployeeCleaningSchedules(ctx context.Context, employeeID int) ([]model.CleaningSchedule, error) {
	var schedules []model.CleaningSchedule
	if err := c.get(ctx, fmt.Sprintf("/employees/%d/cleaning-schedules/", employeeID), nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *Client) ListCleaningSchedulesByDay(ctx context.Context, day model.Weekday) ([]model.CleaningSchedule, error) {
	var schedules []model.CleaningSchedule
	path := fmt.Sprintf("/cleaning-schedules/day/%s/", url.PathEscape(string(day)))
	if err := c.get(ctx, path, nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *Client) ListCleaningLogs(ctx context.Context) ([]model.CleaningLog, error) {
	var logs []model.CleaningLog
	if err := c.get(ctx, "/cleaning-logs/", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *Client) GetCleaningLog(ctx context.Context, id int) (*model.CleaningLogWithDetails, error) {
	var log model.CleaningLogWithDetails
	if err := c.get(ctx, fmt.Sprintf("/cleaning-logs/%d", id), nil, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) CreateCleaningLog(ctx context.Context, input model.CleaningLogInput) (*model.CleaningLog, error) {
	var log model.CleaningLog
	if err := c.post(ctx, "/cleaning-logs/", input, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) UpdateCleaningLog(ctx context.Context, id int, input model.CleaningLogInput) (*model.CleaningLog, error) {
	var log model.CleaningLog
	if err := c.put(ctx, fmt.Sprintf("/cleaning-logs/%d", id), nil, input, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) UpdateCleaningLogStatus(ctx context.Context, id int, status model.CleaningLogStatus) (*model.CleaningLog, error) {
	var log model.CleaningLog
	body := model.StatusUpdate{Status: string(status)}
	if err := c.put(ctx, fmt.Sprintf("/cleaning-logs/%d/status", id), nil, body, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) DeleteCleaningLog(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/cleaning-logs/%d", id))
}

func (c *Client) ListRoomCleaningLogs(ctx context.Context, roomID int) ([]model.CleaningLog, error) {
	var logs []model.CleaningLog
	if err := c.get(ctx, fmt.Sprintf("/rooms/%d/cleaning-logs/", roomID), nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *Client) ListEmployeeCleaningLogs(ctx context.Context, employeeID int) ([]model.CleaningLog, error) {
	var logs []model.CleaningLog
	if err := c.get(ctx, fmt.Sprintf("/employees/%d/cleaning-logs/", employeeID), nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListCleaningLogsByDate takes a YYYY-MM-DD date
func (c *Client) ListCleaningLogsByDate(ctx context.Context, date string) ([]model.CleaningLog, error) {
	var logs []model.CleaningLog
	if err := c.get(ctx, fmt.Sprintf("/cleaning-logs/date/%s/", date), nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// CompleteCleaningLog marks a log as done; the backend stamps the end time
func (c *Client) CompleteCleaningLog(ctx context.Context, id int) (*model.CleaningLog, error) {
	var log model.CleaningLog
	if err := c.post(ctx, fmt.Sprintf("/cleaning-logs/%d/complete/", id), struct{}{}, &log); err != nil {
		return nil, err
	}
	return &log, nil
}
