package domain

import "time"

type ProjectID string
type UserID string

// ProjectDomain is the broad category of a project idea.
type ProjectDomain string

const (
	DomainTechProduct ProjectDomain = "Tech Product"
	DomainNonTech     ProjectDomain = "Non-Tech"
	DomainAcademic    ProjectDomain = "Academic"
	DomainCreative    ProjectDomain = "Creative"
)

func (d ProjectDomain) Valid() bool {
	switch d {
	case DomainTechProduct, DomainNonTech, DomainAcademic, DomainCreative:
		return true
	}
	return false
}

// Platform is the delivery target of a project.
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformMobile  Platform = "mobile"
	PlatformDesktop Platform = "desktop"
	PlatformAPI     Platform = "api"
	PlatformCustom  Platform = "custom"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformWeb, PlatformMobile, PlatformDesktop, PlatformAPI, PlatformCustom:
		return true
	}
	return false
}

type Timestamp = time.Time
