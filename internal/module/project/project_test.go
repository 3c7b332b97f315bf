package project

import (
	"net/http"
	"os"
	"testing"

	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/model"
	"club-portal-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	(&ModuleProject{}).Init()
	os.Exit(m.Run())
}

var admin = jwt.Payload{UserID: 1, RoleID: 1}

func TestCreateProjectDefaults(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoAuthedRequest(t, CreateProject, ProjectCreateReq{
		Name:        "门户网站",
		Description: "d",
		TechStack:   []string{"go", "gin"},
	}, admin)
	test.NoError(t, resp)

	var project model.Project
	require.NoError(t, database.DB.First(&project).Error)
	require.Equal(t, model.ProjectPlanning, project.Status)
	require.Equal(t, []string{"go", "gin"}, []string(project.TechStack))
	require.Nil(t, project.LeadID)
}

func TestCreateProjectInvalidStatus(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoAuthedRequest(t, CreateProject, ProjectCreateReq{
		Name:        "门户网站",
		Description: "d",
		Status:      model.ProjectStatus("cancelled"),
	}, admin)
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
}

func TestCreateProjectUnknownLead(t *testing.T) {
	test.SetupDB(t)

	leadID := uint(404)
	resp := test.DoAuthedRequest(t, CreateProject, ProjectCreateReq{
		Name:        "门户网站",
		Description: "d",
		LeadID:      &leadID,
	}, admin)
	require.Equal(t, response.ErrNotFound.Code, resp.Code)
}

func TestListProjectsStatusFilter(t *testing.T) {
	test.SetupDB(t)

	projects := []model.Project{
		{Name: "a", Description: "d", Status: model.ProjectPlanning},
		{Name: "b", Description: "d", Status: model.ProjectInProgress},
		{Name: "c", Description: "d", Status: model.ProjectInProgress},
	}
	for i := range projects {
		require.NoError(t, database.DB.Create(&projects[i]).Error)
	}

	resp := test.DoAuthedGet(t, ListProjects, "status=in_progress", jwt.Payload{UserID: 2})
	test.NoError(t, resp)

	var data struct {
		Projects []model.Project `json:"projects"`
		Total    int64           `json:"total"`
	}
	test.DecodeData(t, resp, &data)
	require.Equal(t, int64(2), data.Total)
	for _, p := range data.Projects {
		require.Equal(t, model.ProjectInProgress, p.Status)
	}
}

func TestContributors(t *testing.T) {
	test.SetupDB(t)

	member := model.User{Username: "ada"}
	require.NoError(t, database.DB.Create(&member).Error)
	project := model.Project{Name: "门户网站", Description: "d"}
	require.NoError(t, database.DB.Create(&project).Error)

	params := gin.Params{{Key: "id", Value: "1"}}

	resp := test.DoAuthedParams(t, AddContributor, http.MethodPost,
		ContributorReq{UserID: member.ID}, params, admin)
	test.NoError(t, resp)

	require.NoError(t, database.DB.Preload("Contributors").First(&project, project.ID).Error)
	require.Len(t, project.Contributors, 1)
	require.Equal(t, "ada", project.Contributors[0].Username)

	// 移除后连接表清空，用户本身保留
	resp = test.DoAuthedParams(t, RemoveContributor, http.MethodDelete, nil,
		gin.Params{{Key: "id", Value: "1"}, {Key: "user_id", Value: "1"}}, admin)
	test.NoError(t, resp)

	project.Contributors = nil
	require.NoError(t, database.DB.Preload("Contributors").First(&project, project.ID).Error)
	require.Empty(t, project.Contributors)

	var count int64
	require.NoError(t, database.DB.Model(&model.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUpdateProjectRemoveLead(t *testing.T) {
	test.SetupDB(t)

	lead := model.User{Username: "ada"}
	require.NoError(t, database.DB.Create(&lead).Error)
	project := model.Project{Name: "门户网站", Description: "d", LeadID: &lead.ID}
	require.NoError(t, database.DB.Create(&project).Error)

	zero := uint(0)
	resp := test.DoAuthedParams(t, UpdateProject, http.MethodPut,
		ProjectUpdateReq{LeadID: &zero}, gin.Params{{Key: "id", Value: "1"}}, admin)
	test.NoError(t, resp)

	require.NoError(t, database.DB.First(&project, project.ID).Error)
	require.Nil(t, project.LeadID)
}

func TestGetProjectNotFound(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoAuthedParams(t, GetProject, http.MethodGet, nil,
		gin.Params{{Key: "id", Value: "999"}}, jwt.Payload{UserID: 2})
	require.Equal(t, response.ErrNotFound.Code, resp.Code)
}
