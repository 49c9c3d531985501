// Package graphics renders vector-field datasets with gonum/plot.
//
// Quiver draws the velocity magnitude as a heat map with arrows on top,
// Contourf draws the derived scalar W on a diverging colour map symmetric
// about zero, ShowScal derives a scalar and draws it in one call, and Animate
// writes every frame of a dataset into an animated GIF.
//
// All functions return *plot.Plot values (or write bytes) and never open
// windows; use Save to render a plot to PNG, SVG, PDF or any other format
// gonum/plot recognises from the file extension.
//
// Coordinates follow the dataset: columns are X, rows are Y. Masked (NaN)
// vectors are drawn neither as colour nor as arrows.
package graphics
