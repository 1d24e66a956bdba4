package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

func TestCriteriaFromQuery(t *testing.T) {
	v, _ := url.ParseQuery("q=Server&level=Intermediate&tag=Python&tag=&tag=Python&tag=React")
	crit := CriteriaFromQuery(v)

	assert.Equal(t, "Server", crit.SearchText)
	assert.Equal(t, models.LevelIntermediate, crit.Level)
	assert.Equal(t, []string{"Python", "React"}, crit.Tags)
	assert.True(t, crit.Active())
}

func TestCriteriaFromQuery_IgnoresUnknownLevel(t *testing.T) {
	v, _ := url.ParseQuery("level=expert")
	crit := CriteriaFromQuery(v)

	assert.Equal(t, models.Level(""), crit.Level)
	assert.False(t, crit.Active())
}

func TestCriteria_ToggleTag(t *testing.T) {
	crit := Criteria{Tags: []string{"Python"}}

	added := crit.ToggleTag("React")
	assert.Equal(t, []string{"Python", "React"}, added.Tags)
	assert.Equal(t, []string{"Python"}, crit.Tags, "original is untouched")

	removed := added.ToggleTag("Python")
	assert.Equal(t, []string{"React"}, removed.Tags)
	assert.True(t, removed.HasTag("React"))
	assert.False(t, removed.HasTag("Python"))
}

func TestCriteria_ToggleLevel(t *testing.T) {
	crit := Criteria{}
	on := crit.ToggleLevel(models.LevelBasic)
	assert.Equal(t, models.LevelBasic, on.Level)
	off := on.ToggleLevel(models.LevelBasic)
	assert.Equal(t, models.Level(""), off.Level)
	other := on.ToggleLevel(models.LevelAdvanced)
	assert.Equal(t, models.LevelAdvanced, other.Level)
}

func TestCriteria_EncodeRoundTrip(t *testing.T) {
	crit := Criteria{SearchText: "load balancer", Level: models.LevelAdvanced, Tags: []string{"Load Balancer", "Python"}}

	v, err := url.ParseQuery(crit.Encode())
	assert.NoError(t, err)
	assert.Equal(t, crit, CriteriaFromQuery(v))
	assert.Equal(t, "", Criteria{}.Encode())
}
