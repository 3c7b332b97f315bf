package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFullName(t *testing.T) {
	cases := []struct {
		user User
		want string
	}{
		{User{Username: "ada", FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{User{Username: "ada", FirstName: "Ada"}, "Ada"},
		{User{Username: "ada", LastName: "Lovelace"}, "Lovelace"},
		{User{Username: "ada"}, "ada"},
		{User{Username: "ada", FirstName: "  ", LastName: " "}, "ada"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.user.FullName())
	}
}

func TestEventIsPast(t *testing.T) {
	now := time.Now()

	past := Event{EventDate: now.Add(-time.Minute)}
	future := Event{EventDate: now.Add(time.Minute)}
	require.True(t, past.IsPast(now))
	require.False(t, future.IsPast(now))

	// 判定以传入时刻为准
	require.False(t, past.IsPast(now.Add(-time.Hour)))
}

func TestEnumValid(t *testing.T) {
	require.True(t, SkillBeginner.Valid())
	require.False(t, SkillLevel("guru").Valid())

	require.True(t, ProviderGitHub.Valid())
	require.False(t, AuthProvider("gitlab").Valid())

	require.True(t, ProjectArchived.Valid())
	require.False(t, ProjectStatus("cancelled").Valid())

	require.True(t, EventHackathon.Valid())
	require.False(t, EventType("party").Valid())

	require.True(t, AttendanceExcused.Valid())
	require.False(t, AttendanceStatus("late").Valid())

	require.True(t, TaskSubmitted.Valid())
	require.False(t, TaskStatus("done").Valid())
}

func TestTaskStatusLabel(t *testing.T) {
	require.Equal(t, "Pending", TaskPending.Label())
	require.Equal(t, "In Progress", TaskInProgress.Label())
	require.Equal(t, "Submitted", TaskSubmitted.Label())
	require.Equal(t, "Verified", TaskVerified.Label())
	// 未知值原样返回
	require.Equal(t, "done", TaskStatus("done").Label())
}

func TestProfileDTOHidesAuthFields(t *testing.T) {
	u := User{
		Username:   "ada",
		Password:   "hash",
		Provider:   ProviderGitHub,
		ProviderID: "42",
		GithubID:   "42",
	}
	dto := NewProfileDTO(&u)
	require.Equal(t, "ada", dto.Username)
	// 技能为空时投影为空数组
	require.NotNil(t, dto.TechSkills)
	require.Empty(t, dto.TechSkills)
}
