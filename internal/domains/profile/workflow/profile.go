package workflow

import (
	"memorial-backend/internal/domains/profile/access"
	"memorial-backend/internal/domains/profile/model"
)

// ApplyContentUpdate replaces the profile's content fields. Owner or
// accepted editor only. Ownership, slug, collections and counters never
// change through this path.
func ApplyContentUpdate(p *model.Profile, g access.Grant, req model.UpdateProfileRequest) error {
	if !g.CanEdit() {
		return g.Deny("edit this profile")
	}

	p.Name = req.Name
	p.Photo = req.Photo
	p.Birth = req.Birth
	p.Death = req.Death
	p.Eulogy = req.Eulogy
	p.Story = req.Story
	p.Cause = req.Cause

	p.Family = req.Family
	if p.Family == nil {
		p.Family = []model.FamilyMember{}
	}
	p.LifePhotos = req.LifePhotos
	if p.LifePhotos == nil {
		p.LifePhotos = []model.LifePhoto{}
	}
	return nil
}

// LightCandle bumps the candle counter. Open to everyone; the counter
// only ever grows.
func LightCandle(p *model.Profile) int64 {
	p.Candles++
	return p.Candles
}

// SetAftercarePlan replaces the profile's aftercare plan. Owner or
// accepted editor only.
func SetAftercarePlan(p *model.Profile, g access.Grant, req model.AftercarePlanRequest) error {
	if !g.CanEdit() {
		return g.Deny("edit the aftercare plan")
	}

	checklist := req.Checklist
	if checklist == nil {
		checklist = []model.AftercareChecklistItem{}
	}
	p.AftercarePlan = &model.AftercarePlan{
		GoFundMeURL: req.GoFundMeURL,
		Notes:       req.Notes,
		Checklist:   checklist,
	}
	return nil
}

// AddLifePhoto appends uploaded photo metadata. Owner or accepted editor
// only.
func AddLifePhoto(p *model.Profile, g access.Grant, photo model.LifePhoto) error {
	if !g.CanEdit() {
		return g.Deny("add photos")
	}
	p.LifePhotos = append(p.LifePhotos, photo)
	return nil
}
