// Package artifact discovers and classifies the stored objects belonging to
// a resolved contact location.
package artifact

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/disclosure-cli/internal/model"
	"github.com/sells-group/disclosure-cli/pkg/objectstore"
)

// Enumerate lists every object under prefix, following continuation tokens
// until the listing is exhausted, and classifies each by key suffix.
// Unrecognized objects are dropped, not errors. Zero matching objects is a
// valid empty result.
func Enumerate(ctx context.Context, store objectstore.Client, bucket, prefix string) ([]model.Artifact, error) {
	var artifacts []model.Artifact
	token := ""
	for {
		page, err := store.List(ctx, bucket, prefix, token)
		if err != nil {
			return nil, eris.Wrap(err, "artifact: list page")
		}

		for _, obj := range page.Objects {
			fileType, ok := model.Classify(obj.Key)
			if !ok {
				zap.L().Debug("artifact: skipping unrecognized object", zap.String("key", obj.Key))
				continue
			}
			artifacts = append(artifacts, model.Artifact{
				Key:  obj.Key,
				Size: obj.Size,
				Type: fileType,
			})
		}

		if page.NextToken == "" {
			return artifacts, nil
		}
		token = page.NextToken
	}
}
