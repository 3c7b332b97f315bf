package event

import (
	"net/http"
	"os"
	"testing"
	"time"

	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/model"
	"club-portal-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	(&ModuleEvent{}).Init()
	os.Exit(m.Run())
}

var admin = jwt.Payload{UserID: 1, RoleID: 1}

func TestCreateEventDefaults(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoAuthedRequest(t, CreateEvent, EventCreateReq{
		Title:       "Go 分享会",
		Description: "d",
		EventDate:   time.Now().Add(48 * time.Hour),
		Location:    "Online",
	}, admin)
	test.NoError(t, resp)

	var event model.Event
	require.NoError(t, database.DB.First(&event).Error)
	// 未指定类型时默认 meetup
	require.Equal(t, model.EventMeetup, event.EventType)
}

func TestCreateEventInvalidType(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoAuthedRequest(t, CreateEvent, EventCreateReq{
		Title:       "Go 分享会",
		Description: "d",
		EventType:   model.EventType("party"),
		EventDate:   time.Now(),
		Location:    "Online",
	}, admin)
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
}

func TestListEventsUpcoming(t *testing.T) {
	test.SetupDB(t)

	now := time.Now()
	events := []model.Event{
		{Title: "过去", Description: "d", EventType: model.EventMeetup, EventDate: now.Add(-time.Hour), Location: "Online"},
		{Title: "后天", Description: "d", EventType: model.EventMeetup, EventDate: now.Add(48 * time.Hour), Location: "Online"},
		{Title: "明天", Description: "d", EventType: model.EventMeetup, EventDate: now.Add(24 * time.Hour), Location: "Online"},
	}
	for i := range events {
		require.NoError(t, database.DB.Create(&events[i]).Error)
	}

	resp := test.DoAuthedGet(t, ListEvents, "upcoming=true", jwt.Payload{UserID: 2})
	test.NoError(t, resp)

	var data struct {
		Events []model.EventDTO `json:"events"`
		Total  int64            `json:"total"`
	}
	test.DecodeData(t, resp, &data)
	require.Equal(t, int64(2), data.Total)
	require.Equal(t, "明天", data.Events[0].Title)
	require.Equal(t, "后天", data.Events[1].Title)
}

func TestListEventsIsPastDerived(t *testing.T) {
	test.SetupDB(t)

	now := time.Now()
	events := []model.Event{
		{Title: "旧活动", Description: "d", EventType: model.EventMeetup, EventDate: now.Add(-time.Hour), Location: "Online"},
		{Title: "新活动", Description: "d", EventType: model.EventMeetup, EventDate: now.Add(time.Hour), Location: "Online"},
	}
	for i := range events {
		require.NoError(t, database.DB.Create(&events[i]).Error)
	}

	resp := test.DoAuthedGet(t, ListEvents, "", jwt.Payload{UserID: 2})
	test.NoError(t, resp)

	var data struct {
		Events []model.EventDTO `json:"events"`
	}
	test.DecodeData(t, resp, &data)
	require.Len(t, data.Events, 2)
	for _, e := range data.Events {
		switch e.Title {
		case "旧活动":
			require.True(t, e.IsPast)
		case "新活动":
			require.False(t, e.IsPast)
		}
	}
}

func TestUpdateEventPartial(t *testing.T) {
	test.SetupDB(t)

	event := model.Event{
		Title:       "原标题",
		Description: "d",
		EventType:   model.EventMeetup,
		EventDate:   time.Now().Add(time.Hour),
		Location:    "Online",
	}
	require.NoError(t, database.DB.Create(&event).Error)

	title := "新标题"
	resp := test.DoAuthedParams(t, UpdateEvent, http.MethodPut, EventUpdateReq{Title: &title},
		gin.Params{{Key: "id", Value: "1"}}, admin)
	test.NoError(t, resp)

	require.NoError(t, database.DB.First(&event, event.ID).Error)
	require.Equal(t, "新标题", event.Title)
	require.Equal(t, "Online", event.Location)
}

func TestDeleteEventNotFound(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoAuthedParams(t, DeleteEvent, http.MethodDelete, nil,
		gin.Params{{Key: "id", Value: "999"}}, admin)
	require.Equal(t, response.ErrNotFound.Code, resp.Code)
}
