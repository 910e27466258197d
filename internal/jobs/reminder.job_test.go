package jobs

import (
	"testing"

	"renhold/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestReminderJob_Name(t *testing.T) {
	job := &ReminderJob{}
	assert.Equal(t, "ReminderDelivery", job.Name())
}

func TestReminderJob_Schedule(t *testing.T) {
	job := NewReminderJob(nil, nil, services.EveryMinute)
	assert.Equal(t, services.EveryMinute, job.Schedule())

	hourly := NewReminderJob(nil, nil, services.Hourly)
	assert.Equal(t, services.Hourly, hourly.Schedule())
}
