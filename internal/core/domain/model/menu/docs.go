// Package menu provides the MenuItem aggregate.
//
// A menu item always belongs to exactly one restaurant user. Orders capture
// item prices at creation time, so later menu edits never change the total
// of an already placed order.
package menu
