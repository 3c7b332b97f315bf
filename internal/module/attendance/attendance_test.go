package attendance

import (
	"os"
	"testing"
	"time"

	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/model"
	"club-portal-system/test"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	(&ModuleAttendance{}).Init()
	os.Exit(m.Run())
}

func seedUserAndEvent(t *testing.T) (model.User, model.Event) {
	member := model.User{Username: "ada", StudentID: "S2023001"}
	require.NoError(t, database.DB.Create(&member).Error)

	event := model.Event{
		Title:       "Go 分享会",
		Description: "d",
		EventType:   model.EventMeetup,
		EventDate:   time.Now().Add(-time.Hour),
		Location:    "Online",
	}
	require.NoError(t, database.DB.Create(&event).Error)
	return member, event
}

func TestMarkAttendance(t *testing.T) {
	test.SetupDB(t)
	member, event := seedUserAndEvent(t)

	admin := model.User{Username: "root", IsClubAdmin: true}
	require.NoError(t, database.DB.Create(&admin).Error)

	resp := test.DoAuthedRequest(t, MarkAttendance, MarkReq{
		UserID:  member.ID,
		EventID: event.ID,
	}, jwt.Payload{UserID: admin.ID, RoleID: 1})
	test.NoError(t, resp)

	var record model.Attendance
	require.NoError(t, database.DB.First(&record).Error)
	// 缺省状态 present，标记人记录为操作者
	require.Equal(t, model.AttendancePresent, record.Status)
	require.NotNil(t, record.MarkedByID)
	require.Equal(t, admin.ID, *record.MarkedByID)
}

func TestMarkAttendanceDuplicate(t *testing.T) {
	test.SetupDB(t)
	member, event := seedUserAndEvent(t)

	adminPayload := jwt.Payload{UserID: 99, RoleID: 1}

	test.NoError(t, test.DoAuthedRequest(t, MarkAttendance, MarkReq{
		UserID:  member.ID,
		EventID: event.ID,
		Status:  model.AttendancePresent,
	}, adminPayload))

	// 重复标记被拒绝，且不覆盖已有记录
	resp := test.DoAuthedRequest(t, MarkAttendance, MarkReq{
		UserID:  member.ID,
		EventID: event.ID,
		Status:  model.AttendanceAbsent,
	}, adminPayload)
	require.Equal(t, response.ErrAlreadyExists.Code, resp.Code)

	var records []model.Attendance
	require.NoError(t, database.DB.Find(&records).Error)
	require.Len(t, records, 1)
	require.Equal(t, model.AttendancePresent, records[0].Status)
}

func TestMarkAttendanceUnknownEvent(t *testing.T) {
	test.SetupDB(t)
	member := model.User{Username: "ada"}
	require.NoError(t, database.DB.Create(&member).Error)

	resp := test.DoAuthedRequest(t, MarkAttendance, MarkReq{
		UserID:  member.ID,
		EventID: 404,
	}, jwt.Payload{UserID: 99, RoleID: 1})
	require.Equal(t, response.ErrNotFound.Code, resp.Code)
}

func TestMarkAttendanceInvalidStatus(t *testing.T) {
	test.SetupDB(t)
	member, event := seedUserAndEvent(t)

	resp := test.DoAuthedRequest(t, MarkAttendance, MarkReq{
		UserID:  member.ID,
		EventID: event.ID,
		Status:  model.AttendanceStatus("late"),
	}, jwt.Payload{UserID: 99, RoleID: 1})
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
}

func TestMyAttendanceScoped(t *testing.T) {
	test.SetupDB(t)
	member, event := seedUserAndEvent(t)

	other := model.User{Username: "bob"}
	require.NoError(t, database.DB.Create(&other).Error)

	require.NoError(t, database.DB.Create(&model.Attendance{
		UserID: member.ID, EventID: event.ID, Status: model.AttendancePresent,
	}).Error)
	require.NoError(t, database.DB.Create(&model.Attendance{
		UserID: other.ID, EventID: event.ID, Status: model.AttendanceAbsent,
	}).Error)

	resp := test.DoAuthedGet(t, MyAttendance, "", jwt.Payload{UserID: member.ID})
	test.NoError(t, resp)

	var data struct {
		Records []struct {
			Status model.AttendanceStatus `json:"status"`
			Event  model.EventDTO         `json:"event"`
		} `json:"records"`
		Total int `json:"total"`
	}
	test.DecodeData(t, resp, &data)
	require.Equal(t, 1, data.Total)
	require.Equal(t, model.AttendancePresent, data.Records[0].Status)
	require.Equal(t, "Go 分享会", data.Records[0].Event.Title)
	require.True(t, data.Records[0].Event.IsPast)
}
