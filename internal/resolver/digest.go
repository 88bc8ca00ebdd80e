package resolver

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"doctrine/pkg/failures"
)

// Digest is a content address in the sha256:<hex> form.
type Digest string

// digestValue content-addresses one artifact via its canonical JSON
// form. Artifact models contain only structs and slices, so encoding is
// field-ordered and reproducible.
func digestValue(v any) Digest {
	raw, err := json.Marshal(v)
	if err != nil {
		// Artifact models are plain data; marshalling cannot fail on
		// well-typed input. Surface the degenerate case as a digest of
		// the error text rather than aborting a resolution.
		raw = []byte(fmt.Sprintf("unmarshalable:%v", err))
	}
	sum := sha256.Sum256(raw)
	return Digest("sha256:" + hex.EncodeToString(sum[:]))
}

// semanticSeparator joins witness digest fields. NUL cannot occur in
// identifiers, so the encoding is unambiguous. This is a wire-format
// contract: field set, order, and separator are fixed.
const semanticSeparator = "\x00"

// semanticDigest hashes the fields that define an outcome. Unselected
// binding fields contribute empty strings; failure classes contribute in
// sorted order.
func semanticDigest(siteID, operationID string, selected *Binding, result ResultKind, classes []failures.Class) Digest {
	fields := []string{siteID, operationID, "", "", ""}
	if selected != nil {
		fields[2] = selected.RouteFamily
		fields[3] = selected.WorldID
		fields[4] = selected.MorphismRowID
	}
	fields = append(fields, string(result))
	for _, c := range classes {
		fields = append(fields, string(c))
	}

	h := sha256.New()
	for i, f := range fields {
		if i > 0 {
			h.Write([]byte(semanticSeparator))
		}
		h.Write([]byte(f))
	}
	return Digest("sha256:" + hex.EncodeToString(h.Sum(nil)))
}

// project digests every consumed input.
func project(canon Request, in Inputs) Projection {
	return Projection{
		Request:              digestValue(canon),
		SiteInput:            digestValue(in.SiteInput),
		DoctrineSite:         digestValue(in.Site),
		OperationRegistry:    digestValue(in.Operations),
		ControlPlaneContract: digestValue(in.Contract),
		CapabilityRegistry:   digestValue(in.Capabilities),
	}
}
