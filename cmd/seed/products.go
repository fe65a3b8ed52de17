package main

import "shopfront/internal/model"

func sampleProducts() []model.Product {
	return []model.Product{
		{ID: "P001", Name: "Smartphone X", Description: "6.5 inch display with a 50MP camera", Price: 7999, Category: "Electronics", CountInStock: 12, ImageURL: "/images/smartphone.jpg"},
		{ID: "P002", Name: "Wireless Headphones", Description: "Noise cancelling over-ear headphones", Price: 2499, Category: "Electronics", CountInStock: 25, ImageURL: "/images/headphones.jpg"},
		{ID: "P003", Name: "Ultrabook 14", Description: "Lightweight laptop with 16GB RAM", Price: 54999, Category: "Electronics", CountInStock: 5, ImageURL: "/images/laptop.jpg"},
		{ID: "P004", Name: "4K Television 55", Description: "Smart LED television", Price: 42999, Category: "Electronics", CountInStock: 8, ImageURL: "/images/television.jpg"},
		{ID: "P005", Name: "Gaming Console Pro", Description: "Next generation console with two controllers", Price: 104999, Category: "Electronics", CountInStock: 3, ImageURL: "/images/console.jpg"},
		{ID: "P006", Name: "Cotton Shirt", Description: "Regular fit formal shirt", Price: 599, Category: "Clothing", CountInStock: 40, ImageURL: "/images/shirt.jpg"},
		{ID: "P007", Name: "Denim Jeans", Description: "Slim fit stretch denim", Price: 1299, Category: "Clothing", CountInStock: 30, ImageURL: "/images/jeans.jpg"},
		{ID: "P008", Name: "Running Shoes", Description: "Cushioned shoes for daily runs", Price: 3499, Category: "Footwear", CountInStock: 18, ImageURL: "/images/shoes.jpg"},
		{ID: "P009", Name: "Desk Lamp", Description: "Adjustable LED desk lamp", Price: 899, Category: "Home", CountInStock: 22, ImageURL: "/images/lamp.jpg"},
		{ID: "P010", Name: "Espresso Machine", Description: "15 bar pump espresso maker", Price: 12499, Category: "Home", CountInStock: 7, ImageURL: "/images/espresso.jpg"},
		{ID: "P011", Name: "Office Chair", Description: "Ergonomic chair with lumbar support", Price: 8999, Category: "Furniture", CountInStock: 10, ImageURL: "/images/chair.jpg"},
		{ID: "P012", Name: "Paperback Novel", Description: "Bestselling mystery novel", Price: 299, Category: "Books", CountInStock: 60, ImageURL: "/images/novel.jpg"},
		{ID: "P013", Name: "Smartwatch Ultra", Description: "Titanium case with GPS", Price: 24999, Category: "Electronics", CountInStock: 9, ImageURL: "/images/smartwatch.jpg"},
		{ID: "P014", Name: "DSLR Camera Kit", Description: "24MP body with 18-55mm lens", Price: 84999, Category: "Electronics", CountInStock: 4, ImageURL: "/images/camera.jpg"},
	}
}
