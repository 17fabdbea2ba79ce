package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fcrepo-go/ldprepo/common"
	commonHTTP "github.com/fcrepo-go/ldprepo/common/net/http"
	"github.com/fcrepo-go/ldprepo/common/mopentelemetry"
	"github.com/fcrepo-go/ldprepo/internal/engine"
	"github.com/fcrepo-go/ldprepo/internal/rdf"
	"github.com/fcrepo-go/ldprepo/internal/txn"
)

const ntriplesContentType = "application/n-triples"

// Handler exposes the lifecycle engine as LDP HTTP routes, mirroring the
// reference ledger.go's collaborator-holding handler struct, minus the
// split between Command/Query use cases the LE doesn't distinguish.
type Handler struct {
	UseCase *engine.UseCase
}

// Get serves GET /ldp/*, dispatching to get, get_version_info or
// get_version depending on the trailing path segments.
func (h *Handler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get")
	defer span.End()

	logger := common.NewLoggerFromContext(ctx)

	p := parseLDPPath(c.Params("*"))

	switch p.kind {
	case kindVersions:
		infos, err := h.UseCase.GetVersionInfo(ctx, p.uid)
		if err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to list versions", err)
			return h.fail(c, p.uid, err)
		}

		out := make([]versionInfoDTO, 0, len(infos))
		for _, v := range infos {
			out = append(out, versionInfoDTO{Label: v.Label, Created: v.Created.UTC().Format(time.RFC3339), VerURN: v.VerURN})
		}

		return commonHTTP.OK(c, out)

	case kindVersion:
		g, err := h.UseCase.GetVersion(ctx, p.uid, p.ver)
		if err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to get version", err)
			return h.fail(c, p.uid, err)
		}

		return writeGraph(c, g)

	case kindTombstone:
		return c.SendStatus(fiber.StatusMethodNotAllowed)

	default:
		opts := readOptionsDTO{InclChildren: true}
		if err := c.QueryParser(&opts); err != nil {
			return commonHTTP.BadRequest(c, err.Error())
		}

		logger.Debugf("getting resource %s", p.uid)

		g, err := h.UseCase.Get(ctx, p.uid, engine.ReadOptions{InclInbound: opts.InclInbound, InclChildren: opts.InclChildren})
		if err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to get resource", err)
			return h.fail(c, p.uid, err)
		}

		return writeGraph(c, g)
	}
}

// Head serves HEAD /ldp/*uid, rendering the header-worthy subset of a
// resource's admin bookkeeping without a body.
func (h *Handler) Head(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.head")
	defer span.End()

	p := parseLDPPath(c.Params("*"))
	if p.kind != kindResource {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	hdrs, err := h.UseCase.Head(ctx, p.uid)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to head resource", err)
		return h.fail(c, p.uid, err)
	}

	c.Set(fiber.HeaderETag, hdrs.ETag)
	c.Set(fiber.HeaderLastModified, hdrs.LastModified)

	for _, lt := range hdrs.LinkTypes {
		c.Append(fiber.HeaderLink, fmt.Sprintf("<%s>; rel=\"type\"", lt))
	}

	return c.SendStatus(fiber.StatusOK)
}

// Put serves PUT /ldp/*uid: create_or_replace, with create_only derived
// from an If-None-Match: * precondition.
func (h *Handler) Put(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.create_or_replace")
	defer span.End()

	logger := common.NewLoggerFromContext(ctx)

	p := parseLDPPath(c.Params("*"))
	if p.kind != kindResource {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	provided, err := rdf.ParseNTriples(bytes.NewReader(c.Body()))
	if err != nil {
		return commonHTTP.BadRequest(c, err.Error())
	}

	createOnly := c.Get(fiber.HeaderIfNoneMatch) == "*"

	evType, err := h.UseCase.CreateOrReplace(ctx, p.uid, provided, createOnly)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to create or replace resource", err)
		return h.fail(c, p.uid, err)
	}

	logger.Infof("%s resource %s", evType, p.uid)

	if evType == txn.EventCreated {
		c.Set(fiber.HeaderLocation, "/ldp/"+p.uid)
		return c.SendStatus(fiber.StatusCreated)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Post serves POST /ldp/*, dispatching to create_or_replace under a
// server-minted child uid, create_version or resurrect depending on the
// trailing path segments.
func (h *Handler) Post(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.post")
	defer span.End()

	logger := common.NewLoggerFromContext(ctx)

	p := parseLDPPath(c.Params("*"))

	switch p.kind {
	case kindResource:
		provided, err := rdf.ParseNTriples(bytes.NewReader(c.Body()))
		if err != nil {
			return commonHTTP.BadRequest(c, err.Error())
		}

		childUID := common.GenerateUUIDv7().String()
		if p.uid != "" {
			childUID = p.uid + "/" + childUID
		}

		if _, err := h.UseCase.CreateOrReplace(ctx, childUID, provided, true); err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to create child resource", err)
			return h.fail(c, childUID, err)
		}

		logger.Infof("created child resource %s under %s", childUID, p.uid)
		c.Set(fiber.HeaderLocation, "/ldp/"+childUID)

		return c.SendStatus(fiber.StatusCreated)

	case kindVersions:
		var opts createVersionOptionsDTO
		if err := c.QueryParser(&opts); err != nil {
			return commonHTTP.BadRequest(c, err.Error())
		}

		if err := commonHTTP.ValidateStruct(&opts); err != nil {
			return commonHTTP.BadRequest(c, err)
		}

		verUID := opts.Label
		if verUID == "" {
			verUID = common.GenerateUUIDv7().String()
		}

		verURN, err := h.UseCase.CreateVersion(ctx, p.uid, verUID)
		if err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to create version", err)
			return h.fail(c, p.uid, err)
		}

		logger.Infof("created version %s for resource %s", verUID, p.uid)
		c.Set(fiber.HeaderLocation, "/ldp/"+p.uid+"/"+versionsSegment+"/"+verUID)

		return commonHTTP.Created(c, versionInfoDTO{Label: verUID, VerURN: verURN})

	case kindTombstone:
		if err := h.UseCase.Resurrect(ctx, p.uid); err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to resurrect resource", err)
			return h.fail(c, p.uid, err)
		}

		logger.Infof("resurrected resource %s", p.uid)
		c.Set(fiber.HeaderLocation, "/ldp/"+p.uid)

		return c.SendStatus(fiber.StatusNoContent)

	default:
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}
}

// Delete serves DELETE /ldp/*, dispatching to delete or purge depending on
// the trailing path segment.
func (h *Handler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.delete")
	defer span.End()

	logger := common.NewLoggerFromContext(ctx)

	p := parseLDPPath(c.Params("*"))

	switch p.kind {
	case kindResource:
		opts := deleteOptionsDTO{Tombstone: true}
		if err := c.QueryParser(&opts); err != nil {
			return commonHTTP.BadRequest(c, err.Error())
		}

		err := h.UseCase.Delete(ctx, p.uid, engine.DeleteOptions{
			Inbound:        opts.InclInbound,
			DeleteChildren: opts.DeleteChildren,
			LeaveTombstone: opts.Tombstone,
		})
		if err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to delete resource", err)
			return h.fail(c, p.uid, err)
		}

		logger.Infof("deleted resource %s (tombstone=%t)", p.uid, opts.Tombstone)

		return commonHTTP.NoContent(c)

	case kindTombstone:
		var opts purgeOptionsDTO
		if err := c.QueryParser(&opts); err != nil {
			return commonHTTP.BadRequest(c, err.Error())
		}

		if err := h.UseCase.Purge(ctx, p.uid, opts.InclInbound); err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to purge resource", err)
			return h.fail(c, p.uid, err)
		}

		logger.Infof("purged resource %s", p.uid)

		return commonHTTP.NoContent(c)

	default:
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}
}

// Patch serves PATCH /ldp/*uid/fcr:versions/:ver: revert_to_version.
func (h *Handler) Patch(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.revert_to_version")
	defer span.End()

	logger := common.NewLoggerFromContext(ctx)

	p := parseLDPPath(c.Params("*"))
	if p.kind != kindVersion {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	var opts revertOptionsDTO
	if err := c.QueryParser(&opts); err != nil {
		return commonHTTP.BadRequest(c, err.Error())
	}

	if err := h.UseCase.RevertToVersion(ctx, p.uid, p.ver, opts.Backup); err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to revert to version", err)
		return h.fail(c, p.uid, err)
	}

	logger.Infof("reverted resource %s to version %s", p.uid, p.ver)

	return commonHTTP.NoContent(c)
}

// fail translates an internal/engine error into its HTTP-facing shape via
// the same ValidateBusinessError + WithError dispatch the reference ledger
// handlers use.
func (h *Handler) fail(c *fiber.Ctx, uid string, err error) error {
	return commonHTTP.WithError(c, common.ValidateBusinessError(err, "Resource", uid))
}

// writeGraph renders g as the N-Triples body of a 200 response.
func writeGraph(c *fiber.Ctx, g *rdf.Graph) error {
	var buf bytes.Buffer
	if err := rdf.WriteNTriples(&buf, g); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, ntriplesContentType)

	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
