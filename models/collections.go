package models

const (
	RolesCollection          = "roles"
	ProductsCollection       = "products"
	VideosCollection         = "videos"
	ModelsCollection         = "models"
	HomepageImagesCollection = "homepage_images"
	CartsCollection          = "carts"
)
