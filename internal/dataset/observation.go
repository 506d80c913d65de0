package dataset

import (
	"time"

	"github.com/reefguard/benthic-survey-poc/internal/utils"
)

// Observation is one classification call on one photo-quadrat point, after
// the wide machine/human columns have been unpivoted into long form. Group
// and Weight are filled by the label join; an empty Group means the
// classification code had no label-map entry (or the call itself was null).
type Observation struct {
	SiteID         string    `csv:"site_id"`
	SiteName       string    `csv:"site_name"`
	Latitude       float64   `csv:"site_latitude"`
	Longitude      float64   `csv:"site_longitude"`
	SurveyDate     time.Time `csv:"survey_start_date"`
	Depth          float64   `csv:"survey_depth"`
	TransectNumber int       `csv:"transect_number"`
	ImageID        string    `csv:"image_id"`
	PointID        string    `csv:"point_id"`
	PointNumber    int       `csv:"point_num"`
	Type           string    `csv:"type"`
	Classification string    `csv:"classification"`
	Group          string    `csv:"functional_group"`
	Weight         float64   `csv:"weight"`
	TransectID     string    `csv:"transect_id"`
	TransectName   string    `csv:"transect_name"`
}

// TransectContext identifies a transect-level cell of the design: everything
// point- and image-level stripped away. Type keeps machine and human calls in
// separate cells.
type TransectContext struct {
	SiteID         string
	SiteName       string
	Latitude       float64
	Longitude      float64
	SurveyDate     time.Time
	Depth          float64
	TransectNumber int
	TransectID     string
	TransectName   string
	Type           string
}

// ImageContext is a transect context narrowed to a single photo-quadrat
// image. It is the grouping key of the point tally.
type ImageContext struct {
	TransectContext
	ImageID string
}

// Context returns the image context an observation belongs to.
func (o Observation) Context() ImageContext {
	return ImageContext{
		TransectContext: TransectContext{
			SiteID:         o.SiteID,
			SiteName:       o.SiteName,
			Latitude:       o.Latitude,
			Longitude:      o.Longitude,
			SurveyDate:     o.SurveyDate,
			Depth:          o.Depth,
			TransectNumber: o.TransectNumber,
			TransectID:     o.TransectID,
			TransectName:   o.TransectName,
			Type:           o.Type,
		},
		ImageID: o.ImageID,
	}
}

// Site is one surveyed location, summarized across every observation made
// there. Used by the GeoJSON export.
type Site struct {
	SiteID      string
	SiteName    string
	Latitude    float64
	Longitude   float64
	Surveys     int
	FirstSurvey time.Time
	LastSurvey  time.Time
}

// Sites collapses observations down to their distinct sites, sorted by id.
func Sites(observations []Observation) []Site {
	bySite := make(map[string]*Site)
	surveyDates := make(map[string]map[time.Time]bool)

	for _, o := range observations {
		if _, ok := bySite[o.SiteID]; !ok {
			bySite[o.SiteID] = &Site{
				SiteID:    o.SiteID,
				SiteName:  o.SiteName,
				Latitude:  o.Latitude,
				Longitude: o.Longitude,
			}
			surveyDates[o.SiteID] = make(map[time.Time]bool)
		}
		surveyDates[o.SiteID][o.SurveyDate] = true
	}

	sites := make([]Site, 0, len(bySite))
	for _, id := range utils.GetSortedStringKeys(bySite) {
		s := bySite[id]
		dates := utils.GetSortedDateKeys(surveyDates[id], true)
		s.Surveys = len(dates)
		s.FirstSurvey = dates[0]
		s.LastSurvey = dates[len(dates)-1]
		sites = append(sites, *s)
	}
	return sites
}
