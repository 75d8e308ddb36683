package azuresecurity

import (
	"context"
	"fmt"
	"math"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/security/armsecurity"
	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/model"
)

func NewService(subscriptionID string, credential Credential) (*service, error) {
	client, err := armsecurity.NewAssessmentsClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create security assessments client: %w", err)
	}

	return &service{
		scope:  fmt.Sprintf("subscriptions/%s", subscriptionID),
		client: client,
	}, nil
}

// GetSecurityScore lists the subscription's assessments and scores them
func (s *service) GetSecurityScore(ctx context.Context) (*model.SecurityScore, error) {
	var assessments []model.Assessment

	pager := s.client.NewListPager(s.scope, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list security assessments: %w", err)
		}

		for _, assessment := range page.Value {
			if assessment != nil {
				assessments = append(assessments, toAssessment(assessment))
			}
		}
	}

	score := Score(assessments)
	return &score, nil
}

func toAssessment(assessment *armsecurity.AssessmentResponse) model.Assessment {
	result := model.Assessment{
		Name:   lo.FromPtr(assessment.Name),
		Status: "Unknown",
	}
	props := assessment.Properties
	if props == nil {
		return result
	}
	if props.DisplayName != nil {
		result.Name = *props.DisplayName
	}
	if props.Status != nil {
		if props.Status.Code != nil {
			result.Status = string(*props.Status.Code)
		}
		result.Description = lo.FromPtr(props.Status.Description)
	}
	return result
}

// Score counts assessments per status. The percentage is healthy over
// applicable (healthy plus unhealthy), rounded; zero when nothing applies.
// Only the first ten unhealthy assessments are kept.
func Score(assessments []model.Assessment) model.SecurityScore {
	score := model.SecurityScore{
		Enabled:          true,
		TotalAssessments: len(assessments),
		Assessments:      []model.Assessment{},
	}

	for _, assessment := range assessments {
		switch armsecurity.AssessmentStatusCode(assessment.Status) {
		case armsecurity.AssessmentStatusCodeHealthy:
			score.Healthy++
		case armsecurity.AssessmentStatusCodeUnhealthy:
			score.Unhealthy++
			if len(score.Assessments) < topUnhealthy {
				score.Assessments = append(score.Assessments, assessment)
			}
		case armsecurity.AssessmentStatusCodeNotApplicable:
			score.NotApplicable++
		}
	}

	if applicable := score.Healthy + score.Unhealthy; applicable > 0 {
		score.ScorePercentage = int(math.Round(float64(score.Healthy) / float64(applicable) * 100))
	}
	return score
}
