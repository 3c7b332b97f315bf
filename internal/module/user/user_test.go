package user

import (
	"os"
	"testing"

	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/model"
	"club-portal-system/test"
	"club-portal-system/tools"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	selfInit()
	os.Exit(m.Run())
}

func TestRegister(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoRequest(t, Register, RegisterReq{
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "Secret-123",
		FirstName: "Ada",
		LastName:  "Lovelace",
		StudentID: "S2023001",
		BatchYear: 2025,
	})
	test.NoError(t, resp)

	var user model.User
	require.NoError(t, database.DB.Where("username = ?", "ada").First(&user).Error)
	require.Equal(t, model.ProviderLocal, user.Provider)
	require.True(t, tools.PasswordCompare("Secret-123", user.Password))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	test.SetupDB(t)

	req := RegisterReq{Username: "ada", Email: "ada@example.com", Password: "Secret-123"}
	test.NoError(t, test.DoRequest(t, Register, req))

	resp := test.DoRequest(t, Register, req)
	require.Equal(t, response.ErrAlreadyExists.Code, resp.Code)
}

func TestRegisterWeakPassword(t *testing.T) {
	test.SetupDB(t)

	cases := []string{
		"short1!",     // 长度不足
		"nodigits!!!", // 缺数字
		"12345678!",   // 缺字母
		"abcd1234",    // 缺特殊字符
	}
	for _, password := range cases {
		resp := test.DoRequest(t, Register, RegisterReq{
			Username: "ada",
			Email:    "ada@example.com",
			Password: password,
		})
		require.Equal(t, response.ErrInvalidRequest.Code, resp.Code, "password %q", password)
	}
}

func TestLogin(t *testing.T) {
	test.SetupDB(t)

	test.NoError(t, test.DoRequest(t, Register, RegisterReq{
		Username: "ada", Email: "ada@example.com", Password: "Secret-123",
	}))

	resp := test.DoRequest(t, Login, LoginReq{Username: "ada", Password: "Secret-123"})
	test.NoError(t, resp)

	var data struct {
		Token  string `json:"token"`
		UserID uint   `json:"user_id"`
	}
	test.DecodeData(t, resp, &data)
	require.NotEmpty(t, data.Token)

	claims, valid := jwt.ParseToken(data.Token)
	require.True(t, valid)
	require.Equal(t, data.UserID, claims.UserID)
	require.Equal(t, 0, claims.RoleID)
}

func TestLoginAdminRole(t *testing.T) {
	test.SetupDB(t)

	user := model.User{
		Username:    "root",
		Password:    tools.PasswordEncrypt("Secret-123"),
		Provider:    model.ProviderLocal,
		IsClubAdmin: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	resp := test.DoRequest(t, Login, LoginReq{Username: "root", Password: "Secret-123"})
	test.NoError(t, resp)

	var data struct {
		Token string `json:"token"`
	}
	test.DecodeData(t, resp, &data)

	claims, valid := jwt.ParseToken(data.Token)
	require.True(t, valid)
	require.Equal(t, 1, claims.RoleID)
}

func TestLoginWrongPassword(t *testing.T) {
	test.SetupDB(t)

	test.NoError(t, test.DoRequest(t, Register, RegisterReq{
		Username: "ada", Email: "ada@example.com", Password: "Secret-123",
	}))

	resp := test.DoRequest(t, Login, LoginReq{Username: "ada", Password: "Wrong-456"})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)
}

func TestChangePassword(t *testing.T) {
	test.SetupDB(t)

	user := model.User{
		Username: "ada",
		Password: tools.PasswordEncrypt("Secret-123"),
		Provider: model.ProviderLocal,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	resp := test.DoAuthedRequest(t, ChangePassword, ChangePasswordReq{
		OldPassword: "Secret-123",
		NewPassword: "Newpass-456",
	}, jwt.Payload{UserID: user.ID})
	test.NoError(t, resp)

	require.NoError(t, database.DB.First(&user, user.ID).Error)
	require.True(t, tools.PasswordCompare("Newpass-456", user.Password))
}

func TestChangePasswordOAuthUser(t *testing.T) {
	test.SetupDB(t)

	user := model.User{
		Username:   "gh-user",
		Provider:   model.ProviderGitHub,
		ProviderID: "42",
	}
	require.NoError(t, database.DB.Create(&user).Error)

	resp := test.DoAuthedRequest(t, ChangePassword, ChangePasswordReq{
		OldPassword: "whatever-1!",
		NewPassword: "Newpass-456",
	}, jwt.Payload{UserID: user.ID})
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
}

func TestAdjustPoints(t *testing.T) {
	test.SetupDB(t)

	member := model.User{Username: "ada", Points: 10}
	require.NoError(t, database.DB.Create(&member).Error)

	resp := test.DoAuthedRequest(t, AdjustPoints, AdjustPointsReq{
		UserID: member.ID,
		Delta:  15,
		Reason: "hackathon 获奖",
	}, jwt.Payload{UserID: 99, RoleID: 1})
	test.NoError(t, resp)

	var data struct {
		Points int `json:"points"`
	}
	test.DecodeData(t, resp, &data)
	require.Equal(t, 25, data.Points)

	// 负向调整同样生效
	resp = test.DoAuthedRequest(t, AdjustPoints, AdjustPointsReq{
		UserID: member.ID,
		Delta:  -5,
	}, jwt.Payload{UserID: 99, RoleID: 1})
	test.NoError(t, resp)
	test.DecodeData(t, resp, &data)
	require.Equal(t, 20, data.Points)
}

func TestLeaderboardOrder(t *testing.T) {
	test.SetupDB(t)

	for _, u := range []model.User{
		{Username: "low", Points: 5},
		{Username: "high", Points: 50},
		{Username: "mid", Points: 20},
	} {
		require.NoError(t, database.DB.Create(&u).Error)
	}

	resp := test.DoAuthedGet(t, Leaderboard, "page=1&page_size=10", jwt.Payload{UserID: 1})
	test.NoError(t, resp)

	var data struct {
		Entries []LeaderboardEntry `json:"entries"`
		Total   int64              `json:"total"`
	}
	test.DecodeData(t, resp, &data)
	require.Equal(t, int64(3), data.Total)
	require.Len(t, data.Entries, 3)
	require.Equal(t, "high", data.Entries[0].Username)
	require.Equal(t, "mid", data.Entries[1].Username)
	require.Equal(t, "low", data.Entries[2].Username)
}
