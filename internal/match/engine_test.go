package match_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"caseflow/internal/cases/models"
	"caseflow/internal/match"
	"caseflow/internal/match/mocks"
)

var dob = time.Date(1969, 8, 2, 0, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) (*match.Engine, *mocks.MockSearchClient, *mocks.MockProbationStatusClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	search := mocks.NewMockSearchClient(ctrl)
	status := mocks.NewMockProbationStatusClient(ctrl)
	engine, err := match.New(search, status)
	require.NoError(t, err)
	return engine, search, status
}

func TestNew_RequiresClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := match.New(nil, mocks.NewMockProbationStatusClient(ctrl))
	assert.Error(t, err)
	_, err = match.New(mocks.NewMockSearchClient(ctrl), nil)
	assert.Error(t, err)
}

func TestMatch_SingleExactCandidateResolves(t *testing.T) {
	engine, search, status := newEngine(t)
	ids := models.MatchIdentifiers{CRN: "X340906", PNC: "2004/0012345U"}

	search.EXPECT().
		Search(gomock.Any(), match.Name{Forename: "David", Surname: "SMITH"}, dob).
		Return(match.SearchResponse{
			Matches:   []match.SearchCandidate{{MatchIdentifiers: ids}},
			MatchedBy: match.MatchedByAllSupplied,
		}, nil)
	status.EXPECT().GetProbationStatus(gomock.Any(), "X340906").Return("Current", nil)

	result, err := engine.Match(context.Background(), "Mr. David SMITH", dob)
	require.NoError(t, err)

	assert.True(t, result.Matched)
	assert.Equal(t, ids, result.Identifiers)
	assert.Equal(t, "Current", result.ProbationStatus)
	require.NotNil(t, result.Groups)
	require.Len(t, result.Groups.Matches, 1)
	assert.Equal(t, models.MatchTypeNameDOB, result.Groups.Matches[0].MatchType)
	assert.False(t, result.Groups.Matches[0].Confirmed, "confirmation is a downstream human action")
}

func TestMatch_TwoCandidatesIsAmbiguous(t *testing.T) {
	engine, search, _ := newEngine(t)

	search.EXPECT().Search(gomock.Any(), gomock.Any(), dob).Return(match.SearchResponse{
		Matches: []match.SearchCandidate{
			{MatchIdentifiers: models.MatchIdentifiers{CRN: "X1"}},
			{MatchIdentifiers: models.MatchIdentifiers{CRN: "X2"}},
		},
		MatchedBy: match.MatchedByAllSupplied,
	}, nil)

	result, err := engine.Match(context.Background(), "David SMITH", dob)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Nil(t, result.Groups)
	assert.Equal(t, 2, result.CandidateCount)
}

func TestMatch_WeakMatchTypeIsAmbiguous(t *testing.T) {
	engine, search, _ := newEngine(t)

	search.EXPECT().Search(gomock.Any(), gomock.Any(), dob).Return(match.SearchResponse{
		Matches:   []match.SearchCandidate{{MatchIdentifiers: models.MatchIdentifiers{CRN: "X1"}}},
		MatchedBy: match.MatchedByName,
	}, nil)

	result, err := engine.Match(context.Background(), "David SMITH", dob)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, match.MatchedByName, result.MatchedBy)
}

func TestMatch_NoCandidates(t *testing.T) {
	engine, search, _ := newEngine(t)

	search.EXPECT().Search(gomock.Any(), gomock.Any(), dob).Return(match.SearchResponse{
		MatchedBy: match.MatchedByNothing,
	}, nil)

	result, err := engine.Match(context.Background(), "David SMITH", dob)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Nil(t, result.Groups)
	assert.Zero(t, result.CandidateCount)
}

func TestMatch_SearchFailureFallsBackToNoMatch(t *testing.T) {
	engine, search, _ := newEngine(t)

	search.EXPECT().Search(gomock.Any(), gomock.Any(), dob).
		Return(match.SearchResponse{}, errors.New("boom"))

	result, err := engine.Match(context.Background(), "David SMITH", dob)
	require.Error(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, match.MatchedByNothing, result.MatchedBy)
	assert.Nil(t, result.Groups)
}

func TestMatch_StatusLookupFailureLeavesStatusEmpty(t *testing.T) {
	engine, search, status := newEngine(t)

	search.EXPECT().Search(gomock.Any(), gomock.Any(), dob).Return(match.SearchResponse{
		Matches:   []match.SearchCandidate{{MatchIdentifiers: models.MatchIdentifiers{CRN: "X1"}}},
		MatchedBy: match.MatchedByAllSupplied,
	}, nil)
	status.EXPECT().GetProbationStatus(gomock.Any(), "X1").Return("", errors.New("down"))

	result, err := engine.Match(context.Background(), "David SMITH", dob)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Empty(t, result.ProbationStatus)
}
