package service

import (
	"context"
	"errors"
	"room_booking/apperror"
	"room_booking/storage"

	"go.uber.org/zap"
)

// withUploadedImage uploads file (when given) and then runs persist. If
// persist fails the uploaded image is destroyed again.
func withUploadedImage(ctx context.Context, images storage.ImageStore, log *zap.Logger, file *storage.File, folder string, persist func(img *storage.Image) error) error {
	var img *storage.Image
	if file != nil {
		if !file.IsImage() {
			return apperror.Validation("only image files are allowed")
		}
		uploaded, err := images.Upload(ctx, *file, folder)
		if err != nil {
			if errors.Is(err, storage.ErrNotConfigured) {
				return apperror.Validation("image upload is not available")
			}
			return apperror.Internal(err)
		}
		img = uploaded
	}

	if err := persist(img); err != nil {
		if img != nil {
			discardImage(ctx, images, log, &img.PublicID)
		}
		return err
	}
	return nil
}

// discardImage removes an image that is no longer referenced.
func discardImage(ctx context.Context, images storage.ImageStore, log *zap.Logger, publicID *string) {
	if publicID == nil || *publicID == "" {
		return
	}
	if err := images.Delete(context.WithoutCancel(ctx), *publicID); err != nil {
		log.Warn("failed to delete image", zap.String("public_id", *publicID), zap.Error(err))
	}
}
