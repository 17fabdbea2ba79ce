package http

// readOptionsDTO binds the optional query parameters accepted by
// GET /ldp/*uid.
type readOptionsDTO struct {
	InclInbound  bool `query:"inclInbound"`
	InclChildren bool `query:"inclChildren"`
}

// deleteOptionsDTO binds the optional query parameters accepted by
// DELETE /ldp/*uid.
type deleteOptionsDTO struct {
	Tombstone      bool `query:"tombstone"`
	InclInbound    bool `query:"inclInbound"`
	DeleteChildren bool `query:"deleteChildren"`
}

// purgeOptionsDTO binds the optional query parameters accepted by
// DELETE /ldp/*uid/fcr:tombstone.
type purgeOptionsDTO struct {
	InclInbound bool `query:"inclInbound"`
}

// createVersionOptionsDTO binds the optional query parameters accepted by
// POST /ldp/*uid/fcr:versions.
type createVersionOptionsDTO struct {
	Label string `query:"label" validate:"omitempty,max=255"`
}

// revertOptionsDTO binds the optional query parameters accepted by
// PATCH /ldp/*uid/fcr:versions/:ver.
type revertOptionsDTO struct {
	Backup bool `query:"backup"`
}

// versionInfoDTO is the JSON rendering of a single recorded version, for
// GET /ldp/*uid/fcr:versions.
type versionInfoDTO struct {
	Label   string `json:"label"`
	Created string `json:"created"`
	VerURN  string `json:"verUrn"`
}
