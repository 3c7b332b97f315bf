package dashboard

import (
	"os"
	"testing"
	"time"

	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/model"
	"club-portal-system/test"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	(&ModuleDashboard{}).Init()
	os.Exit(m.Run())
}

type dashboardData struct {
	User struct {
		Name      string `json:"name"`
		Points    int    `json:"points"`
		Batch     int    `json:"batch"`
		StudentID string `json:"student_id"`
	} `json:"user"`
	ActiveTasks    []model.TaskDTO  `json:"active_tasks"`
	UpcomingEvents []model.EventDTO `json:"upcoming_events"`
}

func TestDashboard(t *testing.T) {
	test.SetupDB(t)

	me := model.User{
		Username:  "ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Points:    42,
		BatchYear: 2025,
		StudentID: "S2023001",
	}
	other := model.User{Username: "bob"}
	require.NoError(t, database.DB.Create(&me).Error)
	require.NoError(t, database.DB.Create(&other).Error)

	// 只有 in_progress 算进行中，pending 和他人的任务都不算
	tasks := []model.Task{
		{Title: "写文档", Description: "d", AssignedToID: me.ID, Status: model.TaskInProgress},
		{Title: "修 bug", Description: "d", AssignedToID: me.ID, Status: model.TaskPending},
		{Title: "已核验", Description: "d", AssignedToID: me.ID, Status: model.TaskVerified},
		{Title: "别人的", Description: "d", AssignedToID: other.ID, Status: model.TaskInProgress},
	}
	for i := range tasks {
		require.NoError(t, database.DB.Create(&tasks[i]).Error)
	}

	now := time.Now()
	events := []model.Event{
		{Title: "过去的活动", Description: "d", EventType: model.EventMeetup, EventDate: now.Add(-24 * time.Hour), Location: "Online"},
		{Title: "第三近", Description: "d", EventType: model.EventWorkshop, EventDate: now.Add(72 * time.Hour), Location: "Online"},
		{Title: "最近", Description: "d", EventType: model.EventMeetup, EventDate: now.Add(24 * time.Hour), Location: "Online"},
		{Title: "第二近", Description: "d", EventType: model.EventWebinar, EventDate: now.Add(48 * time.Hour), Location: "Online"},
	}
	for i := range events {
		require.NoError(t, database.DB.Create(&events[i]).Error)
	}

	resp := test.DoAuthedGet(t, GetDashboard, "", jwt.Payload{UserID: me.ID})
	test.NoError(t, resp)

	var data dashboardData
	test.DecodeData(t, resp, &data)

	require.Equal(t, "Ada Lovelace", data.User.Name)
	require.Equal(t, 42, data.User.Points)
	require.Equal(t, 2025, data.User.Batch)
	require.Equal(t, "S2023001", data.User.StudentID)

	require.Len(t, data.ActiveTasks, 1)
	require.Equal(t, "写文档", data.ActiveTasks[0].Title)

	// 过去的活动被排除，剩余按时间正序
	require.Len(t, data.UpcomingEvents, 3)
	require.Equal(t, "最近", data.UpcomingEvents[0].Title)
	require.Equal(t, "第二近", data.UpcomingEvents[1].Title)
	require.Equal(t, "第三近", data.UpcomingEvents[2].Title)
	for _, e := range data.UpcomingEvents {
		require.False(t, e.IsPast)
	}
}

func TestDashboardNameFallback(t *testing.T) {
	test.SetupDB(t)

	me := model.User{Username: "ada"}
	require.NoError(t, database.DB.Create(&me).Error)

	resp := test.DoAuthedGet(t, GetDashboard, "", jwt.Payload{UserID: me.ID})
	test.NoError(t, resp)

	var data dashboardData
	test.DecodeData(t, resp, &data)
	// 姓名为空时退回用户名
	require.Equal(t, "ada", data.User.Name)
}

func TestDashboardUpcomingLimit(t *testing.T) {
	test.SetupDB(t)

	me := model.User{Username: "ada"}
	require.NoError(t, database.DB.Create(&me).Error)

	now := time.Now()
	for i := 1; i <= 8; i++ {
		e := model.Event{
			Title:       "活动",
			Description: "d",
			EventType:   model.EventMeetup,
			EventDate:   now.Add(time.Duration(i) * time.Hour),
			Location:    "Online",
		}
		require.NoError(t, database.DB.Create(&e).Error)
	}

	resp := test.DoAuthedGet(t, GetDashboard, "", jwt.Payload{UserID: me.ID})
	test.NoError(t, resp)

	var data dashboardData
	test.DecodeData(t, resp, &data)
	// 最多 5 场
	require.Len(t, data.UpcomingEvents, 5)
}
