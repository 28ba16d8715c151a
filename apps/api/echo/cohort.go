package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/cohortplanner/core/cohort"
)

type cohortApi struct {
	planner  *cohort.Planner
	validate *validator.Validate
}

func registerCohortAPI(g *echo.Group, planner *cohort.Planner, validate *validator.Validate) {
	api := cohortApi{
		planner:  planner,
		validate: validate,
	}

	cg := g.Group("/cohorts")
	cg.GET("/policy", api.policy)
	cg.POST("/partition", api.partition)
	cg.POST("/plan", api.plan)
	cg.POST("/plan/schools", api.planSchools)
	cg.POST("/plan/assessments", api.planAssessments)
}

// Handlers

func (api *cohortApi) policy(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.planner.Policy())
}

func (api *cohortApi) partition(ctx echo.Context) error {
	var data PartitionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PartitionRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	planner, err := api.plannerFor(data.Policy)
	if err != nil {
		return errors.Wrap(err, "resolving policy")
	}
	cohorts, err := planner.Partition(*data.Students)
	if err != nil {
		return errors.Wrap(err, "partitioning students")
	}
	return ctx.JSON(http.StatusOK, PartitionResponse{Cohorts: cohorts})
}

func (api *cohortApi) plan(ctx echo.Context) error {
	var data PlanRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PlanRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	planner, err := api.plannerFor(data.Policy)
	if err != nil {
		return errors.Wrap(err, "resolving policy")
	}
	plans, err := planner.Plan(data.Levels)
	if err != nil {
		return errors.Wrap(err, "planning cohorts")
	}
	return ctx.JSON(http.StatusOK, PlanResponse{Plans: plans})
}

func (api *cohortApi) planSchools(ctx echo.Context) error {
	var data PlanSchoolsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PlanSchoolsRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	planner, err := api.plannerFor(data.Policy)
	if err != nil {
		return errors.Wrap(err, "resolving policy")
	}
	schools, err := planner.PlanSchools(data.Schools)
	if err != nil {
		return errors.Wrap(err, "planning schools")
	}
	return ctx.JSON(http.StatusOK, PlanSchoolsResponse{Schools: schools})
}

func (api *cohortApi) planAssessments(ctx echo.Context) error {
	var data PlanAssessmentsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PlanAssessmentsRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	planner, err := api.plannerFor(data.Policy)
	if err != nil {
		return errors.Wrap(err, "resolving policy")
	}
	levels := cohort.TallyLevels(data.Assessments)
	for i, lvl := range levels {
		if err := cohort.CheckHeadcount(fmt.Sprintf("levels[%d].students", i), lvl.Students); err != nil {
			return errors.Wrap(err, "tallying assessments")
		}
	}
	plans, err := planner.Plan(levels)
	if err != nil {
		return errors.Wrap(err, "planning cohorts")
	}
	return ctx.JSON(http.StatusOK, PlanAssessmentsResponse{Levels: levels, Plans: plans})
}

// plannerFor returns the server's planner, or one built from the request policy
// where unset sizes fall back to the server's policy.
func (api *cohortApi) plannerFor(req *PolicyRequest) (*cohort.Planner, error) {
	if req == nil || req.isEmpty() {
		return api.planner, nil
	}

	policy := api.planner.Policy()
	if req.Ideal != 0 {
		policy.Ideal = req.Ideal
	}
	if req.MinSize != 0 {
		policy.MinSize = req.MinSize
	}
	if req.MaxSize != 0 {
		policy.MaxSize = req.MaxSize
	}
	if err := api.validate.Struct(policy); err != nil {
		return nil, err
	}
	return cohort.NewPlanner(policy)
}

type (
	PolicyRequest struct {
		Ideal   int `json:"ideal" validate:"omitempty,gt=0"`
		MinSize int `json:"min_size" validate:"omitempty,gt=0"`
		MaxSize int `json:"max_size" validate:"omitempty,gt=0"`
	}

	PartitionRequest struct {
		Students *int           `json:"students" validate:"required,headcount"`
		Policy   *PolicyRequest `json:"policy"`
	}

	PartitionResponse struct {
		Cohorts []int `json:"cohorts"`
	}

	PlanRequest struct {
		Levels []cohort.LevelInput `json:"levels" validate:"dive"`
		Policy *PolicyRequest      `json:"policy"`
	}

	PlanResponse struct {
		Plans []cohort.CohortPlan `json:"plans"`
	}

	PlanSchoolsRequest struct {
		Schools []cohort.SchoolLevels `json:"schools" validate:"dive"`
		Policy  *PolicyRequest        `json:"policy"`
	}

	PlanSchoolsResponse struct {
		Schools []cohort.SchoolPlan `json:"schools"`
	}

	PlanAssessmentsRequest struct {
		Assessments []cohort.Assessment `json:"assessments" validate:"dive"`
		Policy      *PolicyRequest      `json:"policy"`
	}

	PlanAssessmentsResponse struct {
		Levels []cohort.LevelInput `json:"levels"`
		Plans  []cohort.CohortPlan `json:"plans"`
	}
)

func (pr *PolicyRequest) isEmpty() bool {
	return pr.Ideal == 0 && pr.MinSize == 0 && pr.MaxSize == 0
}
